// Package workflow implements the reference-gated upload workflow: a
// sensitive action (photo upload, report submission, profile creation) is
// unlocked only after the caller proves they know a reference number present
// in the current department's roster.
package workflow

import (
	"context"
	"strings"
	"sync"

	"reminisce/internal/backend"
	"reminisce/internal/cloudinary"
	"reminisce/internal/metrics"
	"reminisce/internal/model"
)

// State is the single machine value; impossible combinations such as
// "submitting while not verified" cannot be represented.
type State int

const (
	StateIdle State = iota
	StateAwaitingReference
	StateVerifying
	StateVerified
	StateSubmitting
	StateSucceeded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingReference:
		return "awaiting_reference"
	case StateVerifying:
		return "verifying"
	case StateVerified:
		return "verified"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	default:
		return "unknown"
	}
}

// ImageFile is one selected picture in an upload batch.
type ImageFile struct {
	Name string
	Data []byte
}

// Target identifies the album an image batch belongs to.
type Target struct {
	AlbumID   string
	AlbumName string
}

// ProfileInput is the gated student-profile payload. Image is a base64 data
// URL passed through to the backend unchanged; profile pictures do not go
// through the image host.
type ProfileInput struct {
	Name     string
	Nickname string
	Quote    string
	Image    string
}

// Workflow is one instance of the verify-then-submit machine, bound to a
// department. Verification always re-fetches the live roster; a verified
// flag never survives across instances and the roster is never cached.
type Workflow struct {
	mu        sync.Mutex
	state     State
	reference string
	lastErr   *FlowError

	department model.DepartmentInfo
	backend    *backend.Client
	host       *cloudinary.Client
	onRefresh  func(context.Context)
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithRefresh registers a callback run after a successful submission so
// dependent lists (album images) can be re-fetched.
func WithRefresh(fn func(context.Context)) Option {
	return func(w *Workflow) { w.onRefresh = fn }
}

// New creates an idle workflow for the given department.
func New(dept model.DepartmentInfo, client *backend.Client, host *cloudinary.Client, opts ...Option) *Workflow {
	w := &Workflow{
		state:      StateIdle,
		department: dept,
		backend:    client,
		host:       host,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// State returns the current machine state.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// LastError returns the error surfaced by the most recent transition, nil
// when the last transition succeeded.
func (w *Workflow) LastError() *FlowError {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

// Begin opens the reference input: the one transition out of Idle. It also
// restarts a finished or errored pass, clearing prior input and error.
func (w *Workflow) Begin() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateVerifying || w.state == StateSubmitting {
		return
	}
	w.state = StateAwaitingReference
	w.reference = ""
	w.lastErr = nil
}

// Reset returns the machine to Idle, dropping all workflow-local state.
func (w *Workflow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state = StateIdle
	w.reference = ""
	w.lastErr = nil
}

// VerifyReference checks ref against a live fetch of the department's
// roster. An empty trimmed input fails validation without any network call.
// The match is exact and case-sensitive. On failure the machine returns to
// AwaitingReferenceInput with an inline error so the user does not re-type
// after a transient fault.
func (w *Workflow) VerifyReference(ctx context.Context, ref string) error {
	ref = strings.TrimSpace(ref)

	w.mu.Lock()
	if w.state != StateAwaitingReference {
		w.mu.Unlock()
		return ErrNotStarted
	}
	if ref == "" {
		w.lastErr = validation("referenceNumber", "Reference number is required.")
		err := w.lastErr
		w.mu.Unlock()
		return err
	}
	w.state = StateVerifying
	w.mu.Unlock()

	roster, err := w.backend.Roster(ctx)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		metrics.Verifications.WithLabelValues("error").Inc()
		w.state = StateAwaitingReference
		w.lastErr = &FlowError{Kind: KindTransport, Message: MsgTryAgain}
		return w.lastErr
	}
	for _, s := range roster {
		if s.ReferenceNumber == ref && w.inWorkspace(s) {
			metrics.Verifications.WithLabelValues("match").Inc()
			w.state = StateVerified
			w.reference = ref
			w.lastErr = nil
			return nil
		}
	}
	metrics.Verifications.WithLabelValues("miss").Inc()
	w.state = StateAwaitingReference
	w.lastErr = &FlowError{Kind: KindNotFound, Message: MsgReferenceNotFound}
	return w.lastErr
}

// inWorkspace scopes the membership test to the bound department. Reference
// numbers are not assumed unique across workspaces.
func (w *Workflow) inWorkspace(s model.Student) bool {
	if w.department.Name == "" {
		return true
	}
	return s.Workspace == w.department.Name
}

// SubmitImages uploads a batch of pictures. All host uploads run
// concurrently and are awaited in full, then one backend record is created
// per hosted picture, again concurrently and awaited in full. A single
// failure anywhere fails the whole operation; pictures already accepted by
// the host are not deleted (accepted orphan risk).
func (w *Workflow) SubmitImages(ctx context.Context, target Target, uploadedBy string, files []ImageFile) error {
	ref, err := w.beginSubmission()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return w.failSubmission(validation("images", "Select at least one image."))
	}
	if w.host == nil {
		return w.failSubmission(&FlowError{Kind: KindTransport, Message: "Image uploads are not configured."})
	}

	// Phase 1: image host uploads.
	results := make([]*cloudinary.UploadResult, len(files))
	uploadErrs := make([]error, len(files))
	var wg sync.WaitGroup
	for i := range files {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], uploadErrs[i] = w.host.UploadBytes(ctx, files[i].Data, files[i].Name)
		}(i)
	}
	wg.Wait()
	if err := firstError(uploadErrs); err != nil {
		metrics.ImageUploads.WithLabelValues("failed").Inc()
		return w.failSubmission(&FlowError{
			Kind:    KindPartialBatch,
			Message: MsgTryAgain,
		})
	}

	// Phase 2: backend record creation.
	recordErrs := make([]error, len(results))
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			recordErrs[i] = w.backend.UploadImageRecord(ctx, backend.UploadImageRequest{
				AlbumName:       target.AlbumName,
				AlbumID:         target.AlbumID,
				PictureURL:      results[i].SecureURL,
				UploadedBy:      uploadedBy,
				ReferenceNumber: ref,
				DepartmentSlug:  w.department.Slug,
			})
		}(i)
	}
	wg.Wait()
	if err := firstError(recordErrs); err != nil {
		metrics.ImageUploads.WithLabelValues("failed").Inc()
		return w.failSubmission(&FlowError{
			Kind:    KindPartialBatch,
			Message: backend.Message(err, MsgTryAgain),
		})
	}

	metrics.ImageUploads.WithLabelValues("succeeded").Inc()
	w.finishSuccess(ctx)
	return nil
}

// SubmitReport submits a free-text report carrying the verified reference
// number. Empty title or content fails validation without a network call.
func (w *Workflow) SubmitReport(ctx context.Context, title, content string) error {
	ref, err := w.beginSubmission()
	if err != nil {
		return err
	}
	if strings.TrimSpace(title) == "" {
		return w.failSubmission(validation("title", "Title is required."))
	}
	if strings.TrimSpace(content) == "" {
		return w.failSubmission(validation("content", "Content is required."))
	}

	sendErr := w.backend.CreateReport(ctx, model.Report{
		Title:           strings.TrimSpace(title),
		Content:         strings.TrimSpace(content),
		ReferenceNumber: ref,
		DepartmentSlug:  w.department.Slug,
	})
	if sendErr != nil {
		metrics.Reports.WithLabelValues("failed").Inc()
		return w.failSubmission(&FlowError{
			Kind:    KindTransport,
			Message: backend.Message(sendErr, MsgTryAgain),
		})
	}

	metrics.Reports.WithLabelValues("succeeded").Inc()
	w.finishSuccess(ctx)
	return nil
}

// SubmitProfile creates or updates the verified student's profile.
func (w *Workflow) SubmitProfile(ctx context.Context, in ProfileInput) error {
	ref, err := w.beginSubmission()
	if err != nil {
		return err
	}
	if strings.TrimSpace(in.Name) == "" {
		return w.failSubmission(validation("name", "Name is required."))
	}

	sendErr := w.backend.UpdateProfile(ctx, backend.ProfileRequest{
		ReferenceNumber: ref,
		Name:            strings.TrimSpace(in.Name),
		Nickname:        in.Nickname,
		Quote:           in.Quote,
		Image:           in.Image,
	})
	if sendErr != nil {
		return w.failSubmission(&FlowError{
			Kind:    KindTransport,
			Message: backend.Message(sendErr, MsgTryAgain),
		})
	}

	w.finishSuccess(ctx)
	return nil
}

// beginSubmission gates every mutating operation: only a Verified machine
// may enter Submitting, and only one submission runs at a time.
func (w *Workflow) beginSubmission() (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch w.state {
	case StateSubmitting:
		return "", ErrBusy
	case StateVerified:
		w.state = StateSubmitting
		w.lastErr = nil
		return w.reference, nil
	default:
		return "", ErrNotVerified
	}
}

// failSubmission returns the machine to Verified: the user keeps their
// verified status and does not re-enter the reference number.
func (w *Workflow) failSubmission(err *FlowError) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state = StateVerified
	w.lastErr = err
	return err
}

// finishSuccess lands in Succeeded with all workflow-local state cleared,
// so the machine is ready for another pass without a page reload, then runs
// the dependent-list refresh.
func (w *Workflow) finishSuccess(ctx context.Context) {
	w.mu.Lock()
	w.state = StateSucceeded
	w.reference = ""
	w.lastErr = nil
	refresh := w.onRefresh
	w.mu.Unlock()

	if refresh != nil {
		refresh(ctx)
	}
}

func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
