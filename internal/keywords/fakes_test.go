package keywords

import (
	"context"
	"sync"

	"ytinsight/internal/db"
	"ytinsight/internal/models"
	"ytinsight/internal/youtube"
)

type fakeSession struct {
	mu sync.Mutex

	results    []youtube.SearchResult
	searchErr  error
	details    map[string]*youtube.VideoDetails
	detailErrs map[string]error
	channels   map[string]*youtube.ChannelInfo
	quotaErr   error

	// onDetails runs before each detail lookup.
	onDetails func(videoID string)

	searches     int
	detailCalls  int
	channelCalls int
	closed       bool
}

func (f *fakeSession) SearchVideos(ctx context.Context, query string, maxResults int64, order string) ([]youtube.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches++
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	n := min(len(f.results), int(maxResults))
	return f.results[:n], nil
}

func (f *fakeSession) GetVideoDetails(ctx context.Context, videoID string) (*youtube.VideoDetails, error) {
	if f.onDetails != nil {
		f.onDetails(videoID)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detailCalls++
	if err, ok := f.detailErrs[videoID]; ok {
		return nil, err
	}
	d, ok := f.details[videoID]
	if !ok {
		return nil, youtube.ErrNotFound
	}
	return d, nil
}

func (f *fakeSession) GetVideoComments(ctx context.Context, videoID string, maxResults int64, order string) ([]youtube.Comment, error) {
	return []youtube.Comment{}, nil
}

func (f *fakeSession) GetChannelInfo(ctx context.Context, channelID string) (*youtube.ChannelInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.channelCalls++
	info, ok := f.channels[channelID]
	if !ok {
		return nil, youtube.ErrNotFound
	}
	return info, nil
}

func (f *fakeSession) CheckQuota(ctx context.Context) error {
	return f.quotaErr
}

func (f *fakeSession) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

type fakeConnector struct {
	session *fakeSession
	err     error
	opens   int
}

func (c *fakeConnector) Open(ctx context.Context) (youtube.Session, error) {
	c.opens++
	if c.err != nil {
		return nil, c.err
	}
	return c.session, nil
}

type memStore struct {
	mu      sync.Mutex
	records map[string]*models.KeywordAnalysis
	getErr  error
	upserts int
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string]*models.KeywordAnalysis)}
}

func (s *memStore) GetKeywordAnalysis(ctx context.Context, keyword string) (*models.KeywordAnalysis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	rec, ok := s.records[keyword]
	if !ok {
		return nil, db.ErrAnalysisNotFound
	}
	cp := *rec
	return &cp, nil
}

func (s *memStore) UpsertKeywordAnalysis(ctx context.Context, a *models.KeywordAnalysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upserts++
	cp := *a
	s.records[a.Keyword] = &cp
	return nil
}
