package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	domain "sba-portal/internal/domain/application"
	"sba-portal/internal/domain/auth"
	"sba-portal/internal/domain/document"
	"sba-portal/internal/domain/notify"
	"sba-portal/internal/domain/progress"
	"sba-portal/internal/domain/uow"
	"sba-portal/pkg/id"
)

type Usecase struct {
	apps      domain.Repository
	history   domain.HistoryRepository
	docs      document.Repository
	uow       uow.UnitOfWork
	checklist document.Checklist
	events    notify.Publisher
	log       logrus.FieldLogger
	now       func() time.Time
}

func NewUsecase(
	apps domain.Repository,
	history domain.HistoryRepository,
	docs document.Repository,
	tx uow.UnitOfWork,
	checklist document.Checklist,
	events notify.Publisher,
	log logrus.FieldLogger,
) *Usecase {
	if events == nil {
		events = notify.Nop{}
	}
	return &Usecase{
		apps:      apps,
		history:   history,
		docs:      docs,
		uow:       tx,
		checklist: checklist,
		events:    events,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// GetOrCreate returns the borrower's application, creating it in started on
// first read.
func (u *Usecase) GetOrCreate(ctx context.Context, actor auth.Actor) (*ApplicationDTO, error) {
	if err := actor.Require(auth.RoleBorrower); err != nil {
		return nil, err
	}
	a, err := u.ownApplication(ctx, actor)
	if err != nil {
		return nil, err
	}
	return toDTO(a, actor.Role), nil
}

func (u *Usecase) ownApplication(ctx context.Context, actor auth.Actor) (*domain.Application, error) {
	a, err := u.apps.GetByOwnerID(ctx, actor.UserID)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("load application: %w", err)
	}
	a = &domain.Application{
		ApplicationID: id.NewID32(),
		OwnerID:       actor.UserID,
		Status:        domain.StatusStarted,
	}
	if err := u.apps.Create(ctx, a); err != nil {
		// a concurrent first read created it
		if errors.Is(err, domain.ErrOwnerExists) {
			existing, rerr := u.apps.GetByOwnerID(ctx, actor.UserID)
			if rerr != nil {
				return nil, fmt.Errorf("load application: %w", rerr)
			}
			return existing, nil
		}
		return nil, fmt.Errorf("create application: %w", err)
	}
	u.log.WithFields(logrus.Fields{"application_id": a.ApplicationID, "owner_id": a.OwnerID}).Info("application created")
	return a, nil
}

func (u *Usecase) Get(ctx context.Context, actor auth.Actor, applicationID string) (*ApplicationDTO, error) {
	a, err := u.visible(ctx, actor, applicationID)
	if err != nil {
		return nil, err
	}
	return toDTO(a, actor.Role), nil
}

// visible loads an application the actor may read: admins see all,
// borrowers only their own.
func (u *Usecase) visible(ctx context.Context, actor auth.Actor, applicationID string) (*domain.Application, error) {
	if err := actor.Require(auth.RoleAdmin, auth.RoleBorrower); err != nil {
		return nil, err
	}
	a, err := u.apps.GetByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if err := owns(actor, a); err != nil {
		return nil, err
	}
	return a, nil
}

func owns(actor auth.Actor, a *domain.Application) error {
	if actor.Role == auth.RoleBorrower && a.OwnerID != actor.UserID {
		return fmt.Errorf("%w: application belongs to another borrower", domain.ErrForeign)
	}
	return nil
}

func (u *Usecase) ListSubmitted(ctx context.Context, actor auth.Actor) ([]ApplicationDTO, error) {
	if err := actor.Require(auth.RoleAdmin); err != nil {
		return nil, err
	}
	apps, err := u.apps.ListSubmitted(ctx)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	out := make([]ApplicationDTO, 0, len(apps))
	for i := range apps {
		out = append(out, *toDTO(&apps[i], actor.Role))
	}
	return out, nil
}

// Transition applies a lifecycle action. The status change and its history
// row commit together or not at all.
func (u *Usecase) Transition(ctx context.Context, actor auth.Actor, in TransitionInput) (*ApplicationDTO, error) {
	if err := actor.Require(auth.RoleBorrower, auth.RoleAdmin, auth.RoleReferral); err != nil {
		return nil, err
	}
	action, err := domain.ParseAction(in.Action)
	if err != nil {
		return nil, err
	}

	var (
		out  *domain.Application
		from domain.Status
	)
	err = u.uow.WithinApplicationTx(ctx, in.ApplicationID, func(r uow.Repos, a *domain.Application) error {
		if err := owns(actor, a); err != nil {
			return err
		}
		to, err := domain.Next(a.Status, action, actor.Role)
		if err != nil {
			return err
		}
		if action == domain.ActionSubmit {
			docs, err := r.Documents.ListByOwner(ctx, a.OwnerID)
			if err != nil {
				return fmt.Errorf("load documents: %w", err)
			}
			if err := u.checklist.Evaluate(docs).Err(); err != nil {
				return err
			}
		}

		from = a.Status
		a.Advance(to, u.now())
		if err := r.Applications.Save(ctx, a); err != nil {
			return fmt.Errorf("save application: %w", err)
		}
		if err := r.History.Append(ctx, &domain.StatusHistory{
			ApplicationID: a.ID,
			FromStatus:    from,
			ToStatus:      to,
			Action:        action,
			ActorID:       actor.UserID,
		}); err != nil {
			return fmt.Errorf("record status history: %w", err)
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields := logrus.Fields{
		"application_id": out.ApplicationID,
		"action":         action,
		"from":           from,
		"to":             out.Status,
		"actor_id":       actor.UserID,
	}
	u.log.WithFields(fields).Info("application transitioned")
	u.publish(ctx, notify.Event{
		Type:    notify.ApplicationStatusChanged,
		Subject: out.ApplicationID,
		OwnerID: out.OwnerID,
		Data:    map[string]string{"from": string(from), "to": string(out.Status), "action": string(action)},
		At:      out.UpdatedAt,
	})
	return toDTO(out, actor.Role), nil
}

// SubmitMine submits the calling borrower's own application.
func (u *Usecase) SubmitMine(ctx context.Context, actor auth.Actor) (*ApplicationDTO, error) {
	if err := actor.Require(auth.RoleBorrower); err != nil {
		return nil, err
	}
	a, err := u.ownApplication(ctx, actor)
	if err != nil {
		return nil, err
	}
	return u.Transition(ctx, actor, TransitionInput{ApplicationID: a.ApplicationID, Action: string(domain.ActionSubmit)})
}

// UpdateStage sets the free-form stage label. Status is left alone.
func (u *Usecase) UpdateStage(ctx context.Context, actor auth.Actor, in StageInput) (*ApplicationDTO, error) {
	if err := actor.Require(auth.RoleAdmin); err != nil {
		return nil, err
	}
	var out *domain.Application
	err := u.uow.WithinApplicationTx(ctx, in.ApplicationID, func(r uow.Repos, a *domain.Application) error {
		a.Stage = in.Stage
		if in.Notes != nil {
			a.Notes = *in.Notes
		}
		a.UpdatedAt = u.now()
		if err := r.Applications.Save(ctx, a); err != nil {
			return fmt.Errorf("save application: %w", err)
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toDTO(out, actor.Role), nil
}

func (u *Usecase) History(ctx context.Context, actor auth.Actor, applicationID string) ([]domain.StatusHistory, error) {
	a, err := u.visible(ctx, actor, applicationID)
	if err != nil {
		return nil, err
	}
	rows, err := u.history.ListByApplication(ctx, a.ID)
	if err != nil {
		return nil, fmt.Errorf("list status history: %w", err)
	}
	return rows, nil
}

func (u *Usecase) Progress(ctx context.Context, actor auth.Actor) (*ProgressDTO, error) {
	if err := actor.Require(auth.RoleBorrower); err != nil {
		return nil, err
	}
	a, err := u.ownApplication(ctx, actor)
	if err != nil {
		return nil, err
	}
	docs, err := u.docs.ListByOwner(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}
	p := progress.Project(progress.Input{
		Status:        a.Status,
		Stage:         a.Stage,
		DocumentCount: len(docs),
		Minimum:       u.checklist.Minimum,
	})
	return &ProgressDTO{ApplicationID: a.ApplicationID, Status: a.Status, Stage: a.Stage, Projection: p}, nil
}

func (u *Usecase) publish(ctx context.Context, e notify.Event) {
	if err := u.events.Publish(ctx, e); err != nil {
		u.log.WithError(err).WithFields(logrus.Fields{"event": e.Type, "subject": e.Subject}).Warn("publish event failed")
	}
}

func toDTO(a *domain.Application, role auth.Role) *ApplicationDTO {
	actions := domain.Actions(a.Status, role)
	if actions == nil {
		actions = []domain.Action{}
	}
	return &ApplicationDTO{
		ApplicationID: a.ApplicationID,
		OwnerID:       a.OwnerID,
		Status:        a.Status,
		Stage:         a.Stage,
		Notes:         a.Notes,
		SubmittedAt:   a.SubmittedAt,
		UpdatedAt:     a.UpdatedAt,
		Actions:       actions,
	}
}
