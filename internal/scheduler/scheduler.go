package scheduler

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"time"

	"meanrevert/internal/logger"
	"meanrevert/internal/report"
	"meanrevert/internal/repository"
	"meanrevert/internal/service"

	"github.com/robfig/cron/v3"
)

// Scheduler reruns a screen over a rolling lookback window on a cron
// schedule
type Scheduler struct {
	Cron          *cron.Cron
	Service       service.MeanReversionService
	Companies     []repository.CompanyListing
	Threshold     float64
	LookbackYears int
	Out           io.Writer
	Ctx           context.Context
	Now           func() time.Time

	// optional, reports are also emailed when set
	Mailer     repository.EmailRepository
	Recipients []string
}

func NewScheduler(
	ctx context.Context,
	svc service.MeanReversionService,
	companies []repository.CompanyListing,
	threshold float64,
	lookbackYears int,
	out io.Writer,
) *Scheduler {
	return &Scheduler{
		Cron:          cron.New(),
		Service:       svc,
		Companies:     companies,
		Threshold:     threshold,
		LookbackYears: lookbackYears,
		Out:           out,
		Ctx:           ctx,
		Now:           time.Now,
	}
}

func (s *Scheduler) Register(spec string) error {
	if s.LookbackYears < 2 {
		return fmt.Errorf("lookback must be at least 2 years, got %d", s.LookbackYears)
	}
	if _, err := s.Cron.AddFunc(spec, s.screenTask); err != nil {
		return fmt.Errorf("failed to register screen task %q: %w", spec, err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.Cron.Start()
	logger.FromContext(s.Ctx).Info("scheduler started")
}

// Stop blocks until any running screen has finished
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	logger.FromContext(s.Ctx).Info("scheduler stopped")
}

// Window returns the lookback window ending today
func (s *Scheduler) Window() (time.Time, time.Time) {
	now := s.Now()
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return end.AddDate(-s.LookbackYears, 0, 0), end
}

func (s *Scheduler) RunNow() (*service.ScreenResult, error) {
	start, end := s.Window()
	result, err := s.Service.Screen(s.Ctx, service.ScreenInput{
		Companies: s.Companies,
		Start:     start,
		End:       end,
		Threshold: s.Threshold,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to run scheduled screen: %w", err)
	}

	title := fmt.Sprintf("screen %s to %s", start.Format(time.DateOnly), end.Format(time.DateOnly))
	buf := &bytes.Buffer{}
	report.PrintScreen(buf, result)
	fmt.Fprintf(s.Out, "\n=== %s ===\n%s", title, buf.String())

	if s.Mailer != nil && len(s.Recipients) > 0 {
		body := "<pre>" + html.EscapeString(buf.String()) + "</pre>"
		if err := s.Mailer.SendEmail(s.Ctx, s.Recipients, title, body); err != nil {
			logger.FromContext(s.Ctx).Errorw("failed to email screen report", "error", err)
		}
	}
	return result, nil
}

func (s *Scheduler) screenTask() {
	log := logger.FromContext(s.Ctx)
	log.Infow("running scheduled screen", "companies", len(s.Companies))
	if _, err := s.RunNow(); err != nil {
		log.Errorw("scheduled screen failed", "error", err)
	}
}
