package pipeline

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teranos/bindgen/database"
	"github.com/teranos/bindgen/logger"
)

// Data is what a step sees: the database view, a logger and the
// diagnostics sink. The view's current database is the only writable state.
type Data struct {
	View        *database.View
	Logger      *zap.SugaredLogger
	Diagnostics *Diagnostics
	RunID       string
	// Step is the name of the running step.
	Step string
}

// NewData prepares the input of one pipeline run. A nil log discards output.
func NewData(view *database.View, log *zap.SugaredLogger) *Data {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Data{
		View:        view,
		Logger:      log,
		Diagnostics: NewDiagnostics(),
		RunID:       uuid.NewString(),
	}
}

// Current returns the database being processed.
func (d *Data) Current() *database.Database {
	return d.View.Current
}

// Library returns the name of the library being processed.
func (d *Data) Library() string {
	return d.View.Current.Library()
}

func (d *Data) forStep(step string) *Data {
	c := *d
	c.Step = step
	c.Logger = d.Logger.With(logger.FieldLibrary, d.Library(), logger.FieldStep, step)
	return &c
}

// Skip records a candidate that was dropped and logs it at debug level.
func (d *Data) Skip(subject string, err error) {
	d.Diagnostics.Add(Diagnostic{Step: d.Step, Subject: subject, Severity: SeveritySkip, Err: err})
	d.Logger.Debugw("Skipped", "subject", subject, logger.FieldReason, err.Error())
}

// Fail records a hard failure for one item without aborting the step.
func (d *Data) Fail(subject string, err error) {
	d.Diagnostics.Add(Diagnostic{Step: d.Step, Subject: subject, Severity: SeverityFailure, Err: err})
	d.Logger.Warnw("Failed", "subject", subject, logger.FieldError, err)
}

// Report classifies err: recoverable rejections and naming errors are
// skips, everything else is a failure.
func (d *Data) Report(subject string, err error) {
	if IsSkip(err) {
		d.Skip(subject, err)
		return
	}
	d.Fail(subject, err)
}
