package access

import (
	"context"
	"errors"

	"petcare/metrics"

	accountRepo "petcare/database/repository/account"

	"go.uber.org/zap"
)

// Pipeline is the request-time gate in front of every protected operation:
// credential, account status, role, then business profile.
type Pipeline struct {
	verifier CredentialVerifier
	accounts accountRepo.AccountRepository
	profiles ProfileQueries
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// PipelineOption customises a Pipeline.
type PipelineOption func(*Pipeline)

func WithLogger(logger *zap.Logger) PipelineOption {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) PipelineOption {
	return func(p *Pipeline) { p.metrics = m }
}

func NewPipeline(verifier CredentialVerifier, accounts accountRepo.AccountRepository, profiles ProfileQueries, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		verifier: verifier,
		accounts: accounts,
		profiles: profiles,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run builds the RequestContext for one request. The order of the checks is
// fixed so that a suspended or blocked account is rejected the same way on
// every operation, before any role or profile failure can surface.
func (p *Pipeline) Run(ctx context.Context, credential string, op Operation) (RequestContext, error) {
	if op.IsPublic {
		p.metrics.ObserveAuthorization(op.Name, "public", "")
		return RequestContext{}, nil
	}

	var principalID string
	gate := Chain(
		Authenticate(p.verifier, credential),
		func(_ context.Context, rc RequestContext) (RequestContext, error) {
			principalID = rc.PrincipalID()
			return rc, nil
		},
		EnforceAccountStatus(p.accounts),
		AuthorizeRole(op.RequiredRoles),
		RequireVerifiedProfile(p.profiles, op.RequiresVerifiedProfile),
	)

	rc, err := gate(ctx, RequestContext{})
	if err != nil {
		p.observeFailure(op, credential, principalID, err)
		return RequestContext{}, err
	}

	p.metrics.ObserveAuthorization(op.Name, "allowed", "")
	return rc, nil
}

func (p *Pipeline) observeFailure(op Operation, credential, principalID string, err error) {
	var authnErr *AuthenticationError
	var authzErr *AuthorizationError
	switch {
	case errors.As(err, &authnErr):
		p.metrics.ObserveAuthorization(op.Name, "unauthenticated", string(authnErr.Reason))
		p.logger.Debug("credential rejected",
			zap.String("operation", op.Name),
			zap.String("reason", string(authnErr.Reason)),
			zap.Bool("credential_present", credential != ""),
			zap.Error(err))
	case errors.As(err, &authzErr):
		p.metrics.ObserveAuthorization(op.Name, "denied", string(authzErr.Reason))
		p.logger.Warn("authorization denied",
			zap.String("operation", op.Name),
			zap.String("reason", string(authzErr.Reason)),
			zap.String("principal_id", principalID),
			zap.String("detail", authzErr.Detail))
	default:
		p.metrics.ObserveAuthorization(op.Name, "error", "")
		p.logger.Error("authorization pipeline failed",
			zap.String("operation", op.Name),
			zap.String("principal_id", principalID),
			zap.Error(err))
	}
}
