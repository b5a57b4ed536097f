package preference

import (
	"context"

	"go.uber.org/zap"

	"goflare.io/storefront/persist"
)

const (
	SearchKey    = "retrama_search_v1"
	SearchSignal = "retrama:search"
)

var SearchChannel = persist.Channel{Key: SearchKey, Signal: SearchSignal}

var _ SearchService = (*searchService)(nil)

// SearchService keeps the catalog search term, so a search typed in one
// window shows up in the catalog open in another.
type SearchService interface {
	Term(ctx context.Context) string
	SetTerm(ctx context.Context, term string) error
	Subscribe(fn func()) (unsubscribe func())
}

type searchCodec struct{}

func (searchCodec) Default() string {
	return ""
}

func (searchCodec) Decode(raw string, _ bool) string {
	return raw
}

func (searchCodec) Encode(term string) (string, error) {
	return term, nil
}

type searchService struct {
	store *persist.Store[string]
}

func NewSearchService(storage persist.Storage, notifier persist.Notifier, logger *zap.Logger) SearchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &searchService{
		store: persist.New[string](SearchChannel, searchCodec{},
			persist.WithStorage(storage),
			persist.WithNotifier(notifier),
			persist.WithLogger(logger),
		),
	}
}

func (s *searchService) Term(ctx context.Context) string {
	return s.store.Read(ctx)
}

// SetTerm stores term. Writing the term already stored is skipped so that
// windows echoing each other's search do not loop.
func (s *searchService) SetTerm(ctx context.Context, term string) error {
	return s.store.Update(ctx, func(current string) (string, bool) {
		return term, current != term
	})
}

func (s *searchService) Subscribe(fn func()) func() {
	return s.store.Subscribe(fn)
}
