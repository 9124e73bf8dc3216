package dto

type HookInfo struct {
	Name    string
	Version string
	Enabled bool
	Binary  string
	Events  []string
}

type DoctorResult struct {
	Name            string
	ChecksumValid   bool
	BinaryReachable bool
	LifecycleOK     bool
	Error           string
}

type SessionEventInput struct {
	Index    int
	Date     string
	Time     string
	Duration int
}

type DeliveryOutput struct {
	HookName string
	Accepted bool
	Message  string
	Error    string
}
