package client

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/utdisa/isa-portal/models"
)

const uploadConcurrency = 4

// Image is one photo picked for a listing.
type Image struct {
	Data        []byte
	ContentType string
}

func (img Image) extension() string {
	switch strings.ToLower(img.ContentType) {
	case "image/png":
		return "png"
	case "image/heic":
		return "heic"
	case "image/webp":
		return "webp"
	default:
		return "jpg"
	}
}

func (img Image) contentType() string {
	if img.ContentType == "" {
		return "image/jpeg"
	}
	return img.ContentType
}

// UploadOutcome reports what happened to a single photo upload.
type UploadOutcome struct {
	Key string
	URL string
	Err error
}

func (o UploadOutcome) OK() bool {
	return o.Err == nil && o.URL != ""
}

type CreateListingResult struct {
	Listing *models.HousingListing
	Uploads []UploadOutcome
}

// Failed returns the uploads that did not succeed.
func (r CreateListingResult) Failed() []UploadOutcome {
	var failed []UploadOutcome
	for _, o := range r.Uploads {
		if !o.OK() {
			failed = append(failed, o)
		}
	}
	return failed
}

type HousingService struct {
	tables  Tables
	storage Storage
	logger  *slog.Logger
}

func NewHousingService(backend Backend, logger *slog.Logger) *HousingService {
	return &HousingService{
		tables:  backend.Tables(),
		storage: backend.Storage(),
		logger:  logger,
	}
}

// ListListings returns every listing, newest first.
func (s *HousingService) ListListings(ctx context.Context) ([]models.HousingListing, error) {
	return selectRows[models.HousingListing](ctx, s.tables, models.TableHousingListings, NewestFirst())
}

// CreateListing uploads the photos and then inserts the listing with the URLs that made it.
// If no photo could be uploaded nothing is inserted and ErrNoPhotos is returned together
// with the per-photo outcomes.
func (s *HousingService) CreateListing(ctx context.Context, draft models.HousingListing, images []Image) (*CreateListingResult, error) {
	draft.Normalize()
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, ErrNoPhotos
	}

	result := &CreateListingResult{Uploads: s.uploadImages(ctx, images)}

	urls := make([]string, 0, len(images))
	for _, o := range result.Uploads {
		if o.OK() {
			urls = append(urls, o.URL)
		}
	}
	if len(urls) == 0 {
		return result, ErrNoPhotos
	}
	if failed := len(result.Uploads) - len(urls); failed > 0 {
		s.logger.Warn("some listing photos failed to upload", "failed", failed, "uploaded", len(urls))
	}

	draft.ID = nil
	draft.CreatedAt = nil
	draft.PhotoURLs = urls

	listing, err := insertRow(ctx, s.tables, models.TableHousingListings, draft)
	if err != nil {
		return result, err
	}
	result.Listing = listing
	return result, nil
}

func (s *HousingService) uploadImages(ctx context.Context, images []Image) []UploadOutcome {
	outcomes := make([]UploadOutcome, len(images))

	var g errgroup.Group
	g.SetLimit(uploadConcurrency)
	for i, img := range images {
		g.Go(func() error {
			key := fmt.Sprintf("listing-%s.%s", uuid.New(), img.extension())
			url, err := s.storage.Upload(ctx, models.BucketHousingPhotos, key, img.contentType(), img.Data)
			if err != nil {
				s.logger.Error("failed to upload listing photo", "key", key, "error", err)
			}
			outcomes[i] = UploadOutcome{Key: key, URL: url, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

// DeleteListing removes a listing. Only its owner may do so; the backend enforces that.
func (s *HousingService) DeleteListing(ctx context.Context, id uuid.UUID) error {
	return s.tables.Delete(ctx, models.TableHousingListings, Eq("id", id.String()))
}

type FeedStatus int

const (
	FeedIdle FeedStatus = iota
	FeedLoading
	FeedLoaded
	FeedFailed
)

func (s FeedStatus) String() string {
	switch s {
	case FeedLoading:
		return "loading"
	case FeedLoaded:
		return "loaded"
	case FeedFailed:
		return "failed"
	default:
		return "idle"
	}
}

type FeedState struct {
	Status   FeedStatus
	Listings []models.HousingListing
	Err      error
}

// ListingsFeed keeps the marketplace list together with its loading state.
// A failed load keeps the previous listings.
type ListingsFeed struct {
	housing *HousingService

	mu    sync.Mutex
	state FeedState
}

func NewListingsFeed(housing *HousingService) *ListingsFeed {
	return &ListingsFeed{housing: housing}
}

func (f *ListingsFeed) State() FeedState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *ListingsFeed) Load(ctx context.Context) FeedState {
	f.mu.Lock()
	f.state.Status = FeedLoading
	f.state.Err = nil
	f.mu.Unlock()

	listings, err := f.housing.ListListings(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state.Status = FeedFailed
		f.state.Err = err
		return f.state
	}
	f.state = FeedState{Status: FeedLoaded, Listings: listings}
	return f.state
}

// Retry re-issues the fetch after a failure.
func (f *ListingsFeed) Retry(ctx context.Context) FeedState {
	return f.Load(ctx)
}

// Delete removes the listing on the backend and, only when that succeeds, drops it from
// the local list. On failure the list is left as it was and the error is returned.
func (f *ListingsFeed) Delete(ctx context.Context, id uuid.UUID) (FeedState, error) {
	if err := f.housing.DeleteListing(ctx, id); err != nil {
		return f.State(), err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	kept := make([]models.HousingListing, 0, len(f.state.Listings))
	for _, l := range f.state.Listings {
		if l.ID != nil && *l.ID == id {
			continue
		}
		kept = append(kept, l)
	}
	f.state.Listings = kept
	return f.state, nil
}
