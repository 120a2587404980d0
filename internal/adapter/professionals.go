// Package adapter holds the data-access adapters behind the clinic
// dashboard: professionals CRUD, the today-appointments view and the
// dashboard statistics. Adapters never return errors; failures are
// recovered locally, surfaced as toasts or log lines, and callers only
// observe safe defaults and loading flags.
package adapter

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"clinic-management-api/internal/authstate"
	"clinic-management-api/internal/model"
	"clinic-management-api/internal/notify"
)

var errNotFound = errors.New("registro não encontrado")

type ProfessionalStore interface {
	ListProfessionals(ctx context.Context, userID string) ([]model.Professional, error)
	GetProfessional(ctx context.Context, id, userID string) (*model.Professional, error)
	CreateProfessional(ctx context.Context, p *model.Professional) error
	UpdateProfessional(ctx context.Context, id, userID string, patch model.ProfessionalPatch) (*model.Professional, error)
	DeleteProfessional(ctx context.Context, id, userID string) (bool, error)
}

// Professionals is the CRUD adapter for clinic staff, scoped to the
// current user. Every outcome of a write is reported through the notifier.
type Professionals struct {
	store    ProfessionalStore
	auth     *authstate.Tracker
	notifier notify.Notifier
	log      *zap.Logger

	// number of operations in flight; Loading() is true while > 0
	inFlight atomic.Int32
}

func NewProfessionals(store ProfessionalStore, auth *authstate.Tracker, notifier notify.Notifier, log *zap.Logger) *Professionals {
	return &Professionals{store: store, auth: auth, notifier: notifier, log: log}
}

// Loading reports whether at least one operation is in flight.
func (p *Professionals) Loading() bool {
	return p.inFlight.Load() > 0
}

func (p *Professionals) begin() func() {
	p.inFlight.Add(1)
	return func() { p.inFlight.Add(-1) }
}

func (p *Professionals) fail(title string, err error) {
	p.log.Error(title, zap.Error(err))
	p.notifier.Notify(notify.Toast{
		Title:       "Erro",
		Description: title + ": " + err.Error(),
		Variant:     notify.VariantDestructive,
	})
}

func (p *Professionals) unauthenticated() {
	p.notifier.Notify(notify.Toast{
		Title:       "Erro",
		Description: "Usuário não autenticado",
		Variant:     notify.VariantDestructive,
	})
}

// List returns all professionals owned by the current user, ordered by
// name. While authentication is still resolving, or with no user signed
// in, it returns an empty slice without notifying.
func (p *Professionals) List(ctx context.Context) []model.Professional {
	defer p.begin()()

	st := p.auth.Current()
	if !st.Authenticated() {
		return []model.Professional{}
	}

	out, err := p.store.ListProfessionals(ctx, st.User.ID)
	if err != nil {
		p.fail("Não foi possível carregar os profissionais", err)
		return []model.Professional{}
	}
	if out == nil {
		out = []model.Professional{}
	}
	return out
}

// GetByID fetches one professional by id and owner. Zero matches, an
// unauthenticated caller or a query failure all notify and return nil.
func (p *Professionals) GetByID(ctx context.Context, id string) *model.Professional {
	defer p.begin()()

	st := p.auth.Current()
	if !st.Authenticated() {
		p.unauthenticated()
		return nil
	}

	out, err := p.store.GetProfessional(ctx, id, st.User.ID)
	if err != nil {
		p.fail("Não foi possível carregar o profissional", err)
		return nil
	}
	return out
}

// Create inserts a professional tagged with the current user; the id is
// generated here and any caller-supplied id is ignored.
func (p *Professionals) Create(ctx context.Context, data model.Professional) *model.Professional {
	defer p.begin()()

	st := p.auth.Current()
	if !st.Authenticated() {
		p.unauthenticated()
		return nil
	}

	data.ID = uuid.New().String()
	data.UserID = st.User.ID
	if data.AttendanceDays == nil {
		data.AttendanceDays = []string{}
	}

	if err := p.store.CreateProfessional(ctx, &data); err != nil {
		p.fail("Não foi possível cadastrar o profissional", err)
		return nil
	}

	p.notifier.Notify(notify.Toast{
		Title:       "Sucesso",
		Description: "Profissional " + data.Name + " cadastrado com sucesso",
	})
	return &data
}

func (p *Professionals) Update(ctx context.Context, id string, patch model.ProfessionalPatch) *model.Professional {
	defer p.begin()()

	st := p.auth.Current()
	if !st.Authenticated() {
		p.unauthenticated()
		return nil
	}

	out, err := p.store.UpdateProfessional(ctx, id, st.User.ID, patch)
	if err != nil {
		p.fail("Não foi possível atualizar o profissional", err)
		return nil
	}

	p.notifier.Notify(notify.Toast{
		Title:       "Sucesso",
		Description: "Profissional atualizado com sucesso",
	})
	return out
}

// Delete removes the professional matching id and owner, reporting whether
// anything was removed.
func (p *Professionals) Delete(ctx context.Context, id string) bool {
	defer p.begin()()

	st := p.auth.Current()
	if !st.Authenticated() {
		p.unauthenticated()
		return false
	}

	ok, err := p.store.DeleteProfessional(ctx, id, st.User.ID)
	if err != nil {
		p.fail("Não foi possível remover o profissional", err)
		return false
	}
	if !ok {
		p.fail("Não foi possível remover o profissional", errNotFound)
		return false
	}

	p.notifier.Notify(notify.Toast{
		Title:       "Sucesso",
		Description: "Profissional removido com sucesso",
	})
	return true
}
