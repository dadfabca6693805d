package storage

import (
	"bytes"
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/shelfplan/pkg/errors"
	"github.com/matzehuels/shelfplan/pkg/observability"
	"github.com/matzehuels/shelfplan/pkg/planogram"
)

// Summary is the listing view of a stored planogram.
type Summary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Units     int       `json:"units"`
	Items     int       `json:"items"`
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Repository loads and saves planograms as JSON documents in a Backend.
type Repository struct {
	backend Backend
	keyer   Keyer
}

// NewRepository creates a repository. A nil keyer means DefaultKeyer.
func NewRepository(backend Backend, keyer Keyer) *Repository {
	if keyer == nil {
		keyer = NewDefaultKeyer()
	}
	return &Repository{backend: backend, keyer: keyer}
}

// Backend returns the underlying backend.
func (r *Repository) Backend() Backend { return r.backend }

// Load reads a planogram. A missing key yields PLANOGRAM_NOT_FOUND.
func (r *Repository) Load(ctx context.Context, id string) (*planogram.Planogram, error) {
	if err := errors.ValidateID("planogram", id); err != nil {
		return nil, err
	}
	var (
		data []byte
		ok   bool
	)
	err := RetryWithBackoff(ctx, func() error {
		var err error
		data, ok, err = r.backend.Get(ctx, r.keyer.PlanogramKey(id))
		return err
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "load planogram %s", id)
	}
	observability.Storage().OnLoad(ctx, r.backend.Name(), ok)
	if !ok {
		return nil, errors.New(errors.ErrCodePlanogramNotFound, "planogram %q not found", id)
	}

	p, err := planogram.ReadJSON(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode stored planogram %s", id)
	}
	return p, nil
}

// Save validates and writes a planogram, replacing any stored version.
func (r *Repository) Save(ctx context.Context, p *planogram.Planogram) error {
	if err := p.Validate(); err != nil {
		return err
	}
	data, err := Encode(p)
	if err != nil {
		return err
	}
	err = RetryWithBackoff(ctx, func() error {
		return r.backend.Set(ctx, r.keyer.PlanogramKey(p.ID), data)
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "save planogram %s", p.ID)
	}
	observability.Storage().OnSave(ctx, r.backend.Name(), len(data))
	return nil
}

// Delete removes a planogram. A missing key yields PLANOGRAM_NOT_FOUND.
func (r *Repository) Delete(ctx context.Context, id string) error {
	ok, err := r.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New(errors.ErrCodePlanogramNotFound, "planogram %q not found", id)
	}
	if err := r.backend.Delete(ctx, r.keyer.PlanogramKey(id)); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete planogram %s", id)
	}
	observability.Storage().OnDelete(ctx, r.backend.Name())
	return nil
}

// Exists reports whether a planogram is stored under id.
func (r *Repository) Exists(ctx context.Context, id string) (bool, error) {
	if err := errors.ValidateID("planogram", id); err != nil {
		return false, err
	}
	_, ok, err := r.backend.Get(ctx, r.keyer.PlanogramKey(id))
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeStorage, err, "look up planogram %s", id)
	}
	return ok, nil
}

// List returns summaries of every stored planogram, most recently updated
// first. Entries that fail to decode are skipped.
func (r *Repository) List(ctx context.Context) ([]Summary, error) {
	prefix := r.keyer.PlanogramPrefix()
	keys, err := r.backend.List(ctx, prefix)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list planograms")
	}

	out := make([]Summary, 0, len(keys))
	for _, key := range keys {
		p, err := r.Load(ctx, strings.TrimPrefix(key, prefix))
		if err != nil {
			// Deleted concurrently or corrupt.
			if errors.IsNotFound(err) || errors.IsInvalid(err) {
				continue
			}
			return nil, err
		}
		out = append(out, Summarize(p))
	}
	slices.SortStableFunc(out, func(a, b Summary) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out, nil
}

// Summarize builds the listing view of p.
func Summarize(p *planogram.Planogram) Summary {
	return Summary{
		ID:        p.ID,
		Name:      p.Name,
		Units:     len(p.Units),
		Items:     len(p.Items),
		Width:     p.TotalWidth(),
		Height:    p.Height,
		UpdatedAt: p.UpdatedAt,
	}
}

// Encode serializes p the way the repository stores it.
func Encode(p *planogram.Planogram) ([]byte, error) {
	var buf bytes.Buffer
	if err := planogram.WriteJSON(&buf, p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Revision returns a content hash of p, used as an ETag.
func Revision(p *planogram.Planogram) (string, error) {
	data, err := Encode(p)
	if err != nil {
		return "", err
	}
	return Hash(data)[:16], nil
}
