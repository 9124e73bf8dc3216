package usecase

import (
	"context"
	"fmt"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"studyclock/internal/modules/session/domain"
	sessiondto "studyclock/internal/modules/session/dto"
	sessionin "studyclock/internal/modules/session/port/in"
	sessionout "studyclock/internal/modules/session/port/out"
	"studyclock/internal/modules/session/service"
	"studyclock/internal/platform/clock"
	apperrors "studyclock/internal/platform/errors"
)

type Interactor struct {
	clock    clock.Clock
	store    *service.HistoryStore
	recorder *service.Recorder
	exporter sessionout.Exporter
	notifier sessionout.Notifier
	log      hclog.Logger
}

func NewInteractor(
	clock clock.Clock,
	store *service.HistoryStore,
	recorder *service.Recorder,
	exporter sessionout.Exporter,
	notifier sessionout.Notifier,
	log hclog.Logger,
) sessionin.Usecase {
	return &Interactor{clock: clock, store: store, recorder: recorder, exporter: exporter, notifier: notifier, log: log}
}

func (i *Interactor) RecordCompletion(ctx context.Context, input sessiondto.CompleteInput) (sessiondto.RecordOutput, error) {
	saved, err := i.recorder.OnStudyPhaseComplete(ctx, input.StartedAt, input.ConfiguredMinutes)
	if err != nil {
		return sessiondto.RecordOutput{}, err
	}
	if i.notifier != nil {
		if err := i.notifier.SessionRecorded(ctx, saved); err != nil {
			i.log.Warn("session hook notification failed", "error", err)
		}
	}
	return toOutput(saved), nil
}

func (i *Interactor) History(ctx context.Context) ([]sessiondto.RecordOutput, error) {
	records, err := i.store.Records(ctx)
	if err != nil {
		return nil, err
	}
	newest := records.Newest()
	out := make([]sessiondto.RecordOutput, 0, len(newest))
	for _, r := range newest {
		out = append(out, toOutput(r))
	}
	return out, nil
}

func (i *Interactor) DeleteAt(ctx context.Context, index int) error {
	if err := i.store.DeleteAt(ctx, index); err != nil {
		return err
	}
	i.log.Info("session deleted", "index", index)
	return nil
}

func (i *Interactor) DeleteAll(ctx context.Context) error {
	if err := i.store.Clear(ctx); err != nil {
		return err
	}
	i.log.Info("history cleared")
	return nil
}

func (i *Interactor) Summary(ctx context.Context, date string) (sessiondto.SummaryOutput, error) {
	if date == "" {
		date = i.clock.Now().Format(domain.DateLayout)
	} else if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return sessiondto.SummaryOutput{}, fmt.Errorf("%w: date %q", apperrors.ErrInvalidInput, date)
	}
	records, err := i.store.Records(ctx)
	if err != nil {
		return sessiondto.SummaryOutput{}, err
	}
	series := domain.Series(records)
	byDate := make([]sessiondto.DateTotalOutput, 0, len(series))
	for _, point := range series {
		byDate = append(byDate, sessiondto.DateTotalOutput{Date: point.Date, Minutes: point.Minutes})
	}
	return sessiondto.SummaryOutput{
		Date:     date,
		Total:    domain.TotalForDate(records, date),
		Sessions: len(records),
		ByDate:   byDate,
	}, nil
}

func (i *Interactor) Export(ctx context.Context) (sessiondto.ExportOutput, error) {
	if i.exporter == nil {
		return sessiondto.ExportOutput{}, fmt.Errorf("exporter is not configured")
	}
	records, err := i.store.Records(ctx)
	if err != nil {
		return sessiondto.ExportOutput{}, err
	}
	perDate := map[string][]domain.Record{}
	for _, r := range records {
		perDate[r.Date] = append(perDate[r.Date], r)
	}
	out := sessiondto.ExportOutput{}
	for _, point := range domain.Series(records) {
		path, err := i.exporter.ExportDay(ctx, point.Date, perDate[point.Date])
		if err != nil {
			return sessiondto.ExportOutput{}, err
		}
		out.Paths = append(out.Paths, path)
	}
	return out, nil
}

func toOutput(r domain.Indexed) sessiondto.RecordOutput {
	return sessiondto.RecordOutput{Index: r.Index, Date: r.Date, Time: r.Time, Duration: r.Duration}
}
