package devotional

import (
	"context"
	"errors"
	"log"
	"time"
)

// Narrator synthesizes speech for a narration script.
type Narrator interface {
	Synthesize(ctx context.Context, script string) ([]byte, error)
}

// AudioStore keeps the shared narration assets, one per calendar date.
type AudioStore interface {
	Upload(ctx context.Context, date string, audio []byte) (string, error)
	Delete(ctx context.Context, date string) error
}

// DailyCache is the device-local daily envelope store.
type DailyCache interface {
	GetDaily() *DevotionalContent
	SaveDaily(content DevotionalContent) error
}

// Resolution source labels, surfaced to the client for the distinct visual
// treatment of each path.
const (
	SourceCache     = "cache"
	SourceShared    = "shared"
	SourceGenerated = "generated"
)

// Resolution is what the daily endpoint renders: always displayable content,
// possibly fallback, never an error.
type Resolution struct {
	Content  DevotionalContent `json:"content"`
	AudioURL string            `json:"audio_url,omitempty"`
	Source   string            `json:"source"`
}

// audioLookupTimeout bounds the opportunistic audio-URL lookup on the
// cache-hit path. Content is already resolved at that point, so a slow or
// failing backend must not hold it up.
const audioLookupTimeout = 2 * time.Second

type Service struct {
	repo     Repository
	cache    DailyCache
	gen      Generator
	narrator Narrator
	audio    AudioStore
	loc      *time.Location
	now      func() time.Time
}

func NewService(repo Repository, cache DailyCache, gen Generator, narrator Narrator, audio AudioStore, loc *time.Location) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		gen:      gen,
		narrator: narrator,
		audio:    audio,
		loc:      loc,
		now:      time.Now,
	}
}

func (s *Service) today() string {
	return DateKey(s.now(), s.loc)
}

// ResolveDaily produces the devotional to display for "today".
//
// The happy path serves the local cache without touching the network for
// content. Otherwise the shared backend record is adopted if a first writer
// already produced it; if not, this caller becomes the first writer:
// generate, narrate (optional), publish, cache. Fallback content is rendered
// but never persisted, so a retry is always a full attempt. Duplicate inserts
// from concurrent first writers are a tolerated race, not an error.
func (s *Service) ResolveDaily(ctx context.Context, forceRefresh bool) Resolution {
	if !forceRefresh {
		if cached := s.cache.GetDaily(); cached != nil && !cached.IsFallback {
			res := Resolution{Content: *cached, Source: SourceCache}
			res.AudioURL = s.lookupAudioURL(ctx)
			return res
		}
	}

	record, err := s.fetchShared(ctx)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			// Backend unreachable: degrade to direct generation so the reader
			// is never stuck.
			log.Printf("shared backend read failed, generating directly: %v", err)
			return s.generateDaily(ctx, false)
		}
		// No record yet: canonical first-user-of-the-day path.
		return s.generateDaily(ctx, true)
	}

	// Adopt the shared record verbatim, no generation call.
	content := record.Content()
	if err := s.cache.SaveDaily(content); err != nil {
		log.Printf("failed to cache shared devotional: %v", err)
	}

	res := Resolution{Content: content, Source: SourceShared}
	if record.AudioURL != nil {
		res.AudioURL = *record.AudioURL
	} else if url := s.narrateShared(ctx, content); url != "" {
		// The first writer published without audio. Backfill the asset so
		// later readers of the day get it too.
		if err := s.repo.UpdateAudioURL(ctx, record.ID, url); err != nil {
			log.Printf("failed to backfill audio URL: %v", err)
		}
		res.AudioURL = url
	}
	return res
}

// GenerateForTopic is always a fresh call: topic devotionals bypass both the
// local cache and the shared backend.
func (s *Service) GenerateForTopic(ctx context.Context, topic string) DevotionalContent {
	return s.gen.Generate(ctx, topic)
}

// Narrate synthesizes speech for the given content on demand. Used for topic
// devotionals, which have no shared asset.
func (s *Service) Narrate(ctx context.Context, content DevotionalContent) ([]byte, error) {
	if s.narrator == nil {
		return nil, errors.New("narration is not configured")
	}
	return s.narrator.Synthesize(ctx, NarrationScript(content))
}

// HasTodayRecord reports whether the shared backend already holds today's
// devotional. The pre-generation scheduler uses it to stay idle once a
// record exists.
func (s *Service) HasTodayRecord(ctx context.Context) (bool, error) {
	_, err := s.repo.GetDevotionalByDate(ctx, s.today())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// fetchShared reads today's shared record, opportunistically purging records
// from previous days along with their narration assets.
func (s *Service) fetchShared(ctx context.Context) (*DailyDevotional, error) {
	today := s.today()

	purged, err := s.repo.PurgeOtherDates(ctx, today)
	if err != nil {
		log.Printf("failed to purge old devotionals: %v", err)
	}
	for _, date := range purged {
		if s.audio == nil {
			break
		}
		if err := s.audio.Delete(ctx, date); err != nil {
			log.Printf("failed to delete narration asset for %s: %v", date, err)
		}
	}

	return s.repo.GetDevotionalByDate(ctx, today)
}

// generateDaily runs the generation path. publish controls whether a success
// is written to the shared backend (false when the backend already failed).
func (s *Service) generateDaily(ctx context.Context, publish bool) Resolution {
	fresh := s.gen.Generate(ctx, "")
	if fresh.IsFallback {
		// Render only. Persisting a fallback would freeze the failure.
		return Resolution{Content: fresh, Source: SourceGenerated}
	}

	res := Resolution{Content: fresh, Source: SourceGenerated}

	if publish {
		res.AudioURL = s.narrateShared(ctx, fresh)
		if _, err := s.repo.InsertDevotional(ctx, s.today(), fresh, res.AudioURL); err != nil {
			if errors.Is(err, ErrAlreadyExists) {
				log.Printf("another writer published today's devotional first, keeping generated content")
			} else {
				log.Printf("failed to publish today's devotional: %v", err)
			}
		}
	}

	if err := s.cache.SaveDaily(fresh); err != nil {
		log.Printf("failed to cache generated devotional: %v", err)
	}
	return res
}

// narrateShared generates and uploads the shared narration asset. Narration
// failure is non-fatal: it is logged and the devotional ships without audio.
func (s *Service) narrateShared(ctx context.Context, content DevotionalContent) string {
	if s.narrator == nil || s.audio == nil {
		return ""
	}

	audio, err := s.narrator.Synthesize(ctx, NarrationScript(content))
	if err != nil {
		log.Printf("narration failed, shipping devotional without audio: %v", err)
		return ""
	}

	url, err := s.audio.Upload(ctx, s.today(), audio)
	if err != nil {
		log.Printf("narration upload failed: %v", err)
		return ""
	}
	return url
}

// lookupAudioURL checks the shared record for a narration asset after a
// cache hit. Failures are dropped: the cached content renders either way.
func (s *Service) lookupAudioURL(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, audioLookupTimeout)
	defer cancel()

	record, err := s.repo.GetDevotionalByDate(ctx, s.today())
	if err != nil || record.AudioURL == nil {
		return ""
	}
	return *record.AudioURL
}
