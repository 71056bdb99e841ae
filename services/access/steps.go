package access

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"petcare/models"

	accountRepo "petcare/database/repository/account"
	profileRepo "petcare/database/repository/profile"
)

// Step is one gate check. It receives the context built so far and returns the
// next one; a non-nil error stops the chain.
type Step func(ctx context.Context, rc RequestContext) (RequestContext, error)

// Chain runs steps strictly in order. The first failure short-circuits and an
// empty RequestContext is returned with it.
func Chain(steps ...Step) Step {
	return func(ctx context.Context, rc RequestContext) (RequestContext, error) {
		for _, step := range steps {
			next, err := step(ctx, rc)
			if err != nil {
				return RequestContext{}, err
			}
			rc = next
		}
		return rc, nil
	}
}

// Authenticate verifies the credential and attaches the principal.
func Authenticate(verifier CredentialVerifier, credential string) Step {
	return func(ctx context.Context, rc RequestContext) (RequestContext, error) {
		principal, err := verifier.Verify(ctx, credential)
		if err != nil {
			return RequestContext{}, err
		}
		rc.Principal = principal
		return rc, nil
	}
}

// EnforceAccountStatus admits only ACTIVE accounts. It runs for every
// protected operation whatever roles the operation accepts.
func EnforceAccountStatus(accounts accountRepo.AccountRepository) Step {
	return func(ctx context.Context, rc RequestContext) (RequestContext, error) {
		if rc.Principal == nil {
			return RequestContext{}, ErrCredentialMissing
		}
		account, err := accounts.GetByID(ctx, rc.Principal.ID)
		if errors.Is(err, accountRepo.ErrNotFound) {
			return RequestContext{}, Deny(ReasonAccountNotFound, "no account for principal %s", rc.Principal.ID)
		}
		if err != nil {
			return RequestContext{}, fmt.Errorf("account status lookup: %w", err)
		}

		switch account.Status {
		case models.AccountActive:
			return rc, nil
		case models.AccountSuspended:
			return RequestContext{}, Deny(ReasonSuspended, "account is suspended")
		case models.AccountBlocked:
			return RequestContext{}, Deny(ReasonBlocked, "account is banned")
		default:
			return RequestContext{}, Deny(ReasonBlocked, "account status %q is not active", account.Status)
		}
	}
}

// AuthorizeRole requires the principal's role to be one of roles. An empty
// list accepts any role.
func AuthorizeRole(roles []models.Role) Step {
	return func(_ context.Context, rc RequestContext) (RequestContext, error) {
		if len(roles) == 0 {
			return rc, nil
		}
		if rc.Principal == nil || !slices.Contains(roles, rc.Principal.Role) {
			role := models.Role("")
			if rc.Principal != nil {
				role = rc.Principal.Role
			}
			return RequestContext{}, Deny(ReasonRoleMismatch, "role %q is not permitted", role)
		}
		return rc, nil
	}
}

// ProfileQuery fetches the business profile an account holds for one role.
type ProfileQuery func(ctx context.Context, accountID string) (*models.BusinessProfile, error)

// ProfileQueries maps a role to the query that finds its business profile.
type ProfileQueries map[models.Role]ProfileQuery

// ProfileQueriesFor binds repo to each of roles.
func ProfileQueriesFor(repo profileRepo.ProfileRepository, roles ...models.Role) ProfileQueries {
	queries := make(ProfileQueries, len(roles))
	for _, role := range roles {
		queries[role] = func(ctx context.Context, accountID string) (*models.BusinessProfile, error) {
			return repo.FindByOwnerAndRole(ctx, accountID, role)
		}
	}
	return queries
}

// DefaultProfileQueries covers every business role on the platform.
func DefaultProfileQueries(repo profileRepo.ProfileRepository) ProfileQueries {
	return ProfileQueriesFor(repo,
		models.RolePetSitter,
		models.RolePetHotel,
		models.RolePetSchool,
		models.RoleVendor,
	)
}

// RequireVerifiedProfile attaches the principal's verified, active business
// profile when required is set, and passes through otherwise.
func RequireVerifiedProfile(queries ProfileQueries, required bool) Step {
	return func(ctx context.Context, rc RequestContext) (RequestContext, error) {
		if !required {
			return rc, nil
		}
		if rc.Principal == nil {
			return RequestContext{}, ErrCredentialMissing
		}

		query, ok := queries[rc.Principal.Role]
		if !ok {
			return RequestContext{}, Deny(ReasonInvalidRole, "role %q has no business profile", rc.Principal.Role)
		}

		profile, err := query(ctx, rc.Principal.ID)
		if errors.Is(err, profileRepo.ErrNotFound) {
			return RequestContext{}, Deny(ReasonProfileNotFound, "no %s profile for account", rc.Principal.Role)
		}
		if err != nil {
			return RequestContext{}, fmt.Errorf("business profile lookup: %w", err)
		}
		if !profile.Usable() {
			return RequestContext{}, Deny(ReasonProfileNotVerified, "profile %s verified=%t status=%s",
				profile.ID, profile.IsVerified, profile.Status)
		}

		rc.AttachedProfileID = profile.ID
		return rc, nil
	}
}
