package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/siteflow/dashboard-gateway/internal/api/metrics"
	"github.com/siteflow/dashboard-gateway/internal/core/domain"
	"github.com/siteflow/dashboard-gateway/internal/core/ports"
)

// ResourceService implements ports.ResourceService. Reads are read-through
// cached per (resource, user, filter); every successful mutation invalidates
// the resource's whole key space and records an activity event.
type ResourceService struct {
	api      ports.ResourceAPI
	cache    ports.ResourceCache
	activity ports.ActivitySink
	log      zerolog.Logger
	now      func() time.Time
}

func NewResourceService(api ports.ResourceAPI, cache ports.ResourceCache, activity ports.ActivitySink, log zerolog.Logger) *ResourceService {
	return &ResourceService{
		api:      api,
		cache:    cache,
		activity: activity,
		log:      log,
		now:      time.Now,
	}
}

// Read returns the (possibly filtered) collection for a resource.
func (s *ResourceService) Read(ctx context.Context, sess *domain.Session, res domain.Resource, filter map[string]string) (json.RawMessage, error) {
	key := domain.CollectionCacheKey(res, sess.User.ID, filter)
	return s.cachedFetch(key, res, func() (json.RawMessage, error) {
		return s.api.Read(ctx, sess.AuthHeaders(), res, filter)
	})
}

// Get returns a single entity.
func (s *ResourceService) Get(ctx context.Context, sess *domain.Session, res domain.Resource, id string) (json.RawMessage, error) {
	key := domain.EntityCacheKey(res, sess.User.ID, id)
	return s.cachedFetch(key, res, func() (json.RawMessage, error) {
		return s.api.Read(ctx, sess.AuthHeaders(), res, map[string]string{"id": id})
	})
}

// cachedFetch serves a fresh cache hit, otherwise fetches with issue-order
// sequencing. A failed refetch falls back to the stale value when one
// exists (stale-while-revalidate); silent permanent staleness is not
// possible because the entry stays marked stale until a fetch lands.
func (s *ResourceService) cachedFetch(key string, res domain.Resource, fetch func() (json.RawMessage, error)) (json.RawMessage, error) {
	if val, ok := s.cache.Fresh(key); ok {
		metrics.CacheReadsTotal.WithLabelValues(string(res), "hit").Inc()
		return val, nil
	}

	seq := s.cache.Begin(key)
	val, err := fetch()
	if err != nil {
		if stale, ok := s.cache.Stale(key); ok {
			metrics.CacheReadsTotal.WithLabelValues(string(res), "stale").Inc()
			s.log.Warn().Err(err).Str("key", key).Msg("refetch failed, serving stale value")
			return stale, nil
		}
		metrics.CacheReadsTotal.WithLabelValues(string(res), "error").Inc()
		return nil, err
	}

	if !s.cache.Complete(key, seq, val) {
		// A newer response or an invalidation won the race; this one is
		// still the right answer for this caller.
		metrics.CacheDiscardsTotal.WithLabelValues(string(res)).Inc()
	} else {
		metrics.CacheReadsTotal.WithLabelValues(string(res), "miss").Inc()
	}
	return val, nil
}

func (s *ResourceService) Create(ctx context.Context, sess *domain.Session, res domain.Resource, payload json.RawMessage) (json.RawMessage, error) {
	out, err := s.api.Create(ctx, sess.AuthHeaders(), res, payload)
	if err != nil {
		return nil, err
	}
	s.afterMutation(sess, res, domain.VerbCreated, "", entityID(out))
	return out, nil
}

func (s *ResourceService) Update(ctx context.Context, sess *domain.Session, res domain.Resource, id string, payload json.RawMessage) (json.RawMessage, error) {
	out, err := s.api.Update(ctx, sess.AuthHeaders(), res, id, payload)
	if err != nil {
		return nil, err
	}
	s.afterMutation(sess, res, domain.VerbUpdated, "", id)
	return out, nil
}

func (s *ResourceService) Destroy(ctx context.Context, sess *domain.Session, res domain.Resource, id string) error {
	if err := s.api.Destroy(ctx, sess.AuthHeaders(), res, id); err != nil {
		return err
	}
	s.afterMutation(sess, res, domain.VerbDestroyed, "", id)
	return nil
}

// Action performs a named domain action. Actions outside the resource's
// closed table are rejected before touching the network.
func (s *ResourceService) Action(ctx context.Context, sess *domain.Session, res domain.Resource, action, id string, input json.RawMessage) (json.RawMessage, error) {
	if !res.SupportsAction(action) {
		return nil, domain.ErrUnknownAction
	}
	out, err := s.api.Action(ctx, sess.AuthHeaders(), res, action, id, input)
	if err != nil {
		return nil, err
	}
	s.afterMutation(sess, res, domain.VerbActioned, action, id)
	return out, nil
}

// afterMutation centralises the invalidation rule: one mutation marks the
// resource's collection, filtered and entity keys stale for every user —
// and the parent resource's keys too when the resource is scoped, since a
// scoped entity renders inside its parent.
func (s *ResourceService) afterMutation(sess *domain.Session, res domain.Resource, verb domain.ActivityVerb, action, subjectID string) {
	s.cache.Invalidate(domain.InvalidationPrefix(res))
	if scope, ok := res.ScopeOf(); ok {
		s.cache.Invalidate(domain.InvalidationPrefix(scope))
	}
	metrics.MutationsTotal.WithLabelValues(string(res), string(verb)).Inc()

	if s.activity != nil {
		s.activity.Enqueue(domain.ActivityEvent{
			ActorID:    sess.User.ID,
			ActorEmail: sess.User.Email,
			Resource:   res,
			Verb:       verb,
			Action:     action,
			SubjectID:  subjectID,
			OccurredAt: s.now().UTC(),
		})
	}
}

// entityID pulls the id field out of a mutation response so the entity key
// can be named in the activity trail. Responses without one yield "".
func entityID(raw json.RawMessage) string {
	var probe struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return ""
	}
	return probe.ID
}
