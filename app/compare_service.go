package app

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"csvalign/domain/compare"
	"csvalign/domain/table"
	"csvalign/internal"
	"csvalign/internal/config"
	"csvalign/internal/errors"
	"csvalign/ports"
)

// ClientResolver looks up a completion client by provider id.
type ClientResolver interface {
	Client(provider string) (ports.CompletionClient, error)
}

// ProcessRequest carries the per-request knobs for one comparison run.
type ProcessRequest struct {
	Provider   string
	Model      string
	Credential string // key typed into the UI form; overrides the environment key
}

// CompareService owns the Session and runs the comparison pipeline: build the
// prompt from the two loaded tables, call the selected provider, strip the
// markdown fence from the reply and parse it back into a table. At most one
// completion request is in flight at a time.
type CompareService struct {
	mu       sync.Mutex
	session  Session
	resolver ClientResolver
	ai       config.AIConfig
	logger   *internal.Logger
}

// NewCompareService creates the comparison controller.
func NewCompareService(resolver ClientResolver, ai config.AIConfig, logger *internal.Logger) *CompareService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &CompareService{
		resolver: resolver,
		ai:       ai,
		logger:   logger,
	}
}

// LoadTable stores an uploaded, already-normalized table in the given slot.
func (s *CompareService) LoadTable(slot Slot, t table.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.loadTable(slot, t)
	s.logger.Info("[CompareService] loaded %s table: %d headers, %d rows", slot, len(t.Headers), len(t.Rows))
}

// Snapshot returns a copy of the current session state. The table pointers are
// shared but tables are never mutated after construction.
func (s *CompareService) Snapshot() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// DownloadCSV returns the raw result text for download and whether a result
// exists.
func (s *CompareService) DownloadCSV() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.ResultCSV, s.session.ResultCSV != ""
}

// Process runs one comparison. Input and credential checks happen before the
// processing flag is set and before any network traffic. A nil result with a
// nil error means the model returned no text; the previous result is cleared.
func (s *CompareService) Process(ctx context.Context, req ProcessRequest) (*table.Table, error) {
	provider := req.Provider
	if provider == "" {
		provider = s.ai.DefaultProvider
	}
	model := req.Model
	if model == "" {
		model = s.ai.DefaultModel
	}
	key := req.Credential
	if key == "" {
		key = s.ai.KeyFor(provider)
	}

	s.mu.Lock()
	if s.session.Processing {
		s.mu.Unlock()
		return nil, errors.Busy("a comparison is already running")
	}
	if s.session.First == nil || s.session.Second == nil {
		err := errors.MissingInput("upload both spreadsheets before processing")
		s.session.receiveError(err.Message)
		s.mu.Unlock()
		return nil, err
	}
	if key == "" {
		err := errors.MissingCredential(provider)
		s.session.receiveError(err.Message)
		s.mu.Unlock()
		return nil, err
	}
	first, second := *s.session.First, *s.session.Second
	s.session.startProcessing()
	s.mu.Unlock()

	id := uuid.New().String()
	s.logger.Info("[CompareService] request %s: provider=%s model=%s", id, provider, model)

	client, err := s.resolver.Client(provider)
	if err != nil {
		return nil, s.fail(id, err)
	}

	reply, err := client.Complete(ctx, ports.CompletionRequest{
		Model:     model,
		Prompt:    compare.BuildPrompt(first, second),
		APIKey:    key,
		MaxTokens: s.ai.MaxTokens,
	})
	if err != nil {
		return nil, s.fail(id, errors.CompletionError(provider, err))
	}

	stripped := compare.StripFence(reply)
	if strings.TrimSpace(stripped) == "" {
		s.logger.Warn("[CompareService] request %s: empty completion, clearing result", id)
		s.mu.Lock()
		s.session.receiveEmpty()
		s.mu.Unlock()
		return nil, nil
	}

	result := table.Normalize(stripped)
	s.mu.Lock()
	s.session.receiveResult(result, stripped)
	s.mu.Unlock()

	s.logger.Info("[CompareService] request %s: result has %d rows", id, len(result.Rows))
	return &result, nil
}

// fail records the error message on the session and passes the error through.
func (s *CompareService) fail(id string, err error) error {
	s.logger.Error("[CompareService] request %s: %v", id, err)
	s.mu.Lock()
	s.session.receiveError(err.Error())
	s.mu.Unlock()
	return err
}
