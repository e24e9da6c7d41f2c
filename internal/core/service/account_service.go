package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusops/user-service/internal/core/domain"
	"github.com/campusops/user-service/internal/core/ports"
)

// CredentialHasher produces the one-way hash stored for a password.
type CredentialHasher interface {
	Hash(plaintext string) (string, error)
}

// DeletionLock serialises deletions of the same account across replicas (Redis).
// Acquire returns a token identifying this holder; Release only drops the
// lock while it is still held under that token.
type DeletionLock interface {
	Acquire(ctx context.Context, accountID string) (token string, ok bool, err error)
	Release(ctx context.Context, accountID, token string) error
}

// Scanner reports the dependents still pointing at an account.
type Scanner interface {
	FindReferences(ctx context.Context, userID string) ([]string, error)
}

// Remediator clears the dependents pointing at an account.
type Remediator interface {
	Remediate(ctx context.Context, userID string) error
}

type accountService struct {
	accounts   ports.AccountRepository
	scanner    Scanner
	remediator Remediator
	hasher     CredentialHasher
	lock       DeletionLock
	audit      ports.AuditPublisher
	metrics    ports.AccountMetrics
	log        zerolog.Logger
	now        func() time.Time
}

// NewAccountService returns an AccountService implementation.
func NewAccountService(
	accounts ports.AccountRepository,
	scanner Scanner,
	remediator Remediator,
	hasher CredentialHasher,
	lock DeletionLock,
	audit ports.AuditPublisher,
	metrics ports.AccountMetrics,
	log zerolog.Logger,
) ports.AccountService {
	return &accountService{
		accounts:   accounts,
		scanner:    scanner,
		remediator: remediator,
		hasher:     hasher,
		lock:       lock,
		audit:      audit,
		metrics:    metrics,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Create authorises the actor against the requested role, hashes the
// credential and inserts the account.
func (s *accountService) Create(ctx context.Context, actor domain.Actor, in ports.CreateAccountInput) (_ *domain.Account, err error) {
	defer func() { s.metrics.AccountOperation("create", outcome(err)) }()

	if !domain.CanManage(actor.Role, in.Role) {
		return nil, fmt.Errorf("create user: %w: role %s cannot create %s", domain.ErrForbidden, actor.Role, in.Role)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("create user: hash password: %w", err)
	}

	now := s.now()
	created, err := s.accounts.Create(ctx, &domain.Account{
		Name:         in.Name,
		FullName:     in.FullName,
		PasswordHash: hash,
		Role:         in.Role,
		Status:       in.Role.ActiveByDefault(),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.publish(domain.AuditEvent{
		AccountID:  created.ID,
		Action:     domain.AuditCreated,
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		TargetRole: created.Role,
		At:         now,
	})
	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Str("actor_id", actor.ID).Msg("user created")
	return created, nil
}

// Edit applies a partial update. Authorisation is checked against the
// account's current role, never the payload.
func (s *accountService) Edit(ctx context.Context, actor domain.Actor, id string, in ports.EditAccountInput) (_ *domain.Account, err error) {
	defer func() { s.metrics.AccountOperation("edit", outcome(err)) }()

	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("edit user: %w", err)
	}

	if !domain.CanManage(actor.Role, account.Role) {
		return nil, fmt.Errorf("edit user: %w: role %s cannot edit %s", domain.ErrForbidden, actor.Role, account.Role)
	}

	var (
		changes domain.AccountChanges
		fields  []string
	)
	if in.Name != "" {
		changes.Name = &in.Name
		fields = append(fields, "name")
	}
	if in.FullName != "" {
		changes.FullName = &in.FullName
		fields = append(fields, "full_name")
	}
	if in.Password != "" {
		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return nil, fmt.Errorf("edit user: hash password: %w", err)
		}
		changes.PasswordHash = &hash
		fields = append(fields, "password")
	}
	if changes.Empty() {
		return account, nil
	}
	changes.UpdatedAt = s.now()

	if err := s.accounts.Update(ctx, id, changes); err != nil {
		return nil, fmt.Errorf("edit user: %w", err)
	}
	changes.Apply(account)

	s.publish(domain.AuditEvent{
		AccountID:  id,
		Action:     domain.AuditUpdated,
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		TargetRole: account.Role,
		Fields:     fields,
		At:         changes.UpdatedAt,
	})
	s.log.Info().Str("user_id", id).Strs("fields", fields).Str("actor_id", actor.ID).Msg("user updated")
	return account, nil
}

// Delete removes the account when no dependent still points at it.
func (s *accountService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	return s.delete(ctx, actor, id, false)
}

// ForceDelete remediates every dependent reference, then removes the account.
func (s *accountService) ForceDelete(ctx context.Context, actor domain.Actor, id string) error {
	return s.delete(ctx, actor, id, true)
}

func (s *accountService) delete(ctx context.Context, actor domain.Actor, id string, force bool) (err error) {
	op := "delete"
	if force {
		op = "force_delete"
	}
	defer func() {
		s.metrics.AccountOperation(op, outcome(err))
	}()

	// Deletion is admin-only and orthogonal to the manages table.
	if actor.Role != domain.RoleAdmin {
		return fmt.Errorf("%s: %w: only admin users can delete other users", op, domain.ErrForbidden)
	}
	if actor.ID == id {
		return fmt.Errorf("%s: %w", op, domain.ErrSelfDeletion)
	}

	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	token, acquired, lockErr := s.lock.Acquire(ctx, id)
	switch {
	case lockErr != nil:
		s.log.Warn().Err(lockErr).Str("user_id", id).Msg("deletion lock unavailable, proceeding unlocked")
	case !acquired:
		return fmt.Errorf("%s: %w", op, domain.ErrDeletionInProgress)
	default:
		defer func() {
			if err := s.lock.Release(context.WithoutCancel(ctx), id, token); err != nil {
				s.log.Warn().Err(err).Str("user_id", id).Msg("failed to release deletion lock")
			}
		}()
	}

	action := domain.AuditDeleted
	if force {
		action = domain.AuditForceDeleted
		if err := s.remediator.Remediate(ctx, id); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	} else {
		refs, err := s.scanner.FindReferences(ctx, id)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if len(refs) > 0 {
			return &domain.ReferenceConflictError{References: refs}
		}
	}

	if err := s.accounts.Delete(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.publish(domain.AuditEvent{
		AccountID:  id,
		Action:     action,
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		TargetRole: account.Role,
		At:         s.now(),
	})
	s.log.Info().Str("user_id", id).Str("actor_id", actor.ID).Bool("force", force).Msg("user deleted")
	return nil
}

func (s *accountService) publish(event domain.AuditEvent) {
	if s.audit != nil {
		s.audit.Publish(event)
	}
}

// outcome maps a lifecycle error to a metrics label.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrSelfDeletion):
		return "forbidden"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrReferentialConflict), errors.Is(err, domain.ErrDeletionInProgress),
		errors.Is(err, domain.ErrAccountExists):
		return "conflict"
	default:
		return "error"
	}
}
