package access

import "petcare/models"

// Operation is the metadata a protected operation declares to the pipeline.
type Operation struct {
	Name string
	// IsPublic skips every check, credential verification included.
	IsPublic bool
	// RequiredRoles lists the accepted roles. Empty admits any authenticated principal.
	RequiredRoles []models.Role
	// RequiresVerifiedProfile demands a verified, active business profile for the principal's role.
	RequiresVerifiedProfile bool
}

// RequestContext is built once per request by the pipeline.
type RequestContext struct {
	Principal *models.Principal
	// AttachedProfileID is set only when the profile check found a verified, active profile.
	AttachedProfileID string
}

// Authenticated reports whether a principal was attached.
func (rc RequestContext) Authenticated() bool {
	return rc.Principal != nil
}

// PrincipalID returns the acting identity, or "" for public requests.
func (rc RequestContext) PrincipalID() string {
	if rc.Principal == nil {
		return ""
	}
	return rc.Principal.ID
}

// ProfileID returns the attached business profile id.
func (rc RequestContext) ProfileID() (string, bool) {
	return rc.AttachedProfileID, rc.AttachedProfileID != ""
}
