// Package seed fills a development database with an admin account and sample events
package seed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"airwatch/internal/modkit/repokit"
	"airwatch/internal/platform/config"
	perr "airwatch/internal/platform/errors"
	"airwatch/internal/platform/logger"
	authdomain "airwatch/internal/services/api/auth/domain"
	eventsrepo "airwatch/internal/services/api/events/repo"

	"github.com/google/uuid"
)

// Event id range the generator draws from
const (
	MinEventID = 100000
	MaxEventID = 1099999
)

// UserEnsurer creates an account unless its email is taken
type UserEnsurer interface {
	EnsureUser(ctx context.Context, in authdomain.CreateUserInput) (authdomain.User, bool, error)
}

// AdminFromConfig reads SEED_ADMIN_NAME, SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD
func AdminFromConfig(cfg config.Conf) authdomain.CreateUserInput {
	c := cfg.Prefix("SEED_ADMIN_")
	return authdomain.CreateUserInput{
		Name:     c.MayString("NAME", "Admin"),
		Email:    c.MustString("EMAIL"),
		Password: c.MustString("PASSWORD"),
		Role:     authdomain.RoleAdmin,
	}
}

// Admin ensures the admin account exists
func Admin(ctx context.Context, users UserEnsurer, in authdomain.CreateUserInput) (authdomain.User, error) {
	u, created, err := users.EnsureUser(ctx, in)
	if err != nil {
		return authdomain.User{}, err
	}
	log := logger.C(ctx).Info().Int64("user_id", u.ID).Str("email", u.Email)
	if created {
		log.Msg("admin created")
	} else {
		log.Msg("admin already exists")
	}
	return u, nil
}

// EventInserter writes one event with its recognitions inside q
type EventInserter interface {
	Insert(ctx context.Context, q repokit.Queryer, e eventsrepo.RowEvent, ds []eventsrepo.RowDetection) error
}

// DeviceEnsurer registers unknown device ids
type DeviceEnsurer interface {
	Ensure(ctx context.Context, ids []string) (int64, error)
}

// Sample is one generated event
type Sample struct {
	Event      eventsrepo.RowEvent
	Detections []eventsrepo.RowDetection
}

type named struct {
	name  string
	score float64
}

var (
	channels = []named{{"Global TV", 0.81}, {"Nepal TV", 0.85}, {"Kantipur TV", 0.78}}
	ads      = []named{{"Shivam Cement", 0.96}, {"Dabur Honey", 0.92}, {"Wai Wai Noodles", 0.94}}
)

// Generator draws random events over the week before Now
type Generator struct {
	Rand      *rand.Rand
	Now       func() time.Time
	ImageBase string
}

// NewGenerator returns a Generator seeded from seed
func NewGenerator(seed uint64) *Generator {
	return &Generator{
		Rand:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Now:       time.Now,
		ImageBase: "https://apm-captured-images.s3.ap-south-1.amazonaws.com/Nepal_Frames/analyzed_frames",
	}
}

// ID returns a random event id in [MinEventID, MaxEventID]
func (g *Generator) ID() int64 {
	return MinEventID + g.Rand.Int64N(MaxEventID-MinEventID+1)
}

func (g *Generator) timestamp() int64 {
	now := g.Now().Unix()
	week := int64(7 * 24 * 60 * 60)
	return now - week + g.Rand.Int64N(week+1)
}

func (g *Generator) subset(from []named, lo, hi int) []named {
	n := lo + g.Rand.IntN(hi-lo+1)
	idx := g.Rand.Perm(len(from))
	out := make([]named, 0, n)
	for _, i := range idx[:n] {
		out = append(out, from[i])
	}
	return out
}

// Sample generates one event for device; its id is assigned at insert time
func (g *Generator) Sample(device string) Sample {
	s := Sample{Event: eventsrepo.RowEvent{DeviceID: device, Timestamp: g.timestamp(), Type: 29}}

	var chs, as []named
	if g.Rand.Float64() > 0.3 {
		chs = g.subset(channels, 1, 1)
	}
	if g.Rand.Float64() > 0.4 {
		as = g.subset(ads, 1, 3)
	}
	for _, c := range chs {
		s.Detections = append(s.Detections, eventsrepo.RowDetection{Category: "channels", Name: c.name, Score: &c.score})
	}
	for _, a := range as {
		s.Detections = append(s.Detections, eventsrepo.RowDetection{Category: "ads", Name: a.name, Score: &a.score})
		if s.Event.MaxScore == nil || a.score > *s.Event.MaxScore {
			score := a.score
			s.Event.MaxScore = &score
		}
	}
	if len(chs)+len(as) > 0 {
		p := fmt.Sprintf("%s/%s/%s_%d_recognized.jpg", strings.TrimRight(g.ImageBase, "/"), device, device, s.Event.Timestamp)
		s.Event.ImagePath = &p
	}
	return s
}

// Devices returns fixed plus n new device ids derived from random uuids
func Devices(fixed []string, n int) []string {
	out := append([]string(nil), fixed...)
	for i := 0; i < n; i++ {
		out = append(out, "R-"+strings.ToUpper(uuid.NewString()[:8]))
	}
	return out
}

// Seeder inserts generated events in batches, one transaction per batch
type Seeder struct {
	DB          repokit.TxRunner
	Events      EventInserter
	Devices     DeviceEnsurer
	Gen         *Generator
	BatchSize   int
	MaxAttempts int
}

// Run registers devices and inserts total events spread evenly across them
// a batch whose random ids collide is retried with fresh ids up to MaxAttempts
func (s *Seeder) Run(ctx context.Context, devices []string, total int) (int, error) {
	if len(devices) == 0 {
		return 0, perr.Validationf("at least one device is required")
	}
	batch, attempts := s.BatchSize, s.MaxAttempts
	if batch <= 0 {
		batch = 10
	}
	if attempts <= 0 {
		attempts = 3
	}
	log := logger.C(ctx)

	if n, err := s.Devices.Ensure(ctx, devices); err != nil {
		return 0, err
	} else if n > 0 {
		log.Info().Int64("devices", n).Msg("devices registered")
	}

	per := total / len(devices)
	samples := make([]Sample, 0, per*len(devices))
	for _, d := range devices {
		for i := 0; i < per; i++ {
			samples = append(samples, s.Gen.Sample(d))
		}
	}
	s.Gen.Rand.Shuffle(len(samples), func(i, j int) { samples[i], samples[j] = samples[j], samples[i] })

	created := 0
	for start, n := 0, 1; start < len(samples); start, n = start+batch, n+1 {
		chunk := samples[start:min(start+batch, len(samples))]
		if err := s.insertBatch(ctx, chunk, attempts); err != nil {
			return created, fmt.Errorf("batch %d: %w", n, err)
		}
		created += len(chunk)
		log.Info().Int("batch", n).Int("events", len(chunk)).Msg("batch committed")
	}
	return created, nil
}

func (s *Seeder) insertBatch(ctx context.Context, chunk []Sample, attempts int) error {
	var err error
	for try := 1; try <= attempts; try++ {
		for i := range chunk {
			chunk[i].Event.ID = s.Gen.ID()
		}
		err = repokit.WithTx(ctx, s.DB, func(q repokit.Queryer) error {
			for _, smp := range chunk {
				if err := s.Events.Insert(ctx, q, smp.Event, smp.Detections); err != nil {
					return err
				}
			}
			return nil
		})
		if err == nil || !perr.IsDuplicateKey(err) {
			return err
		}
		logger.C(ctx).Warn().Int("attempt", try).Msg("event id collision; retrying batch")
	}
	return fmt.Errorf("no unique event ids after %d attempts: %w", attempts, err)
}
