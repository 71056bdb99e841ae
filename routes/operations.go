package routes

import (
	"petcare/models"
	"petcare/services/access"
)

var providerRoles = []models.Role{models.RolePetSitter, models.RolePetHotel, models.RolePetSchool}

// Operation metadata consumed by the access pipeline, one entry per endpoint.
var (
	OpHealth  = access.Operation{Name: "health", IsPublic: true}
	OpMetrics = access.Operation{Name: "metrics", IsPublic: true}

	OpListBookings = access.Operation{Name: "booking.list"}
	OpGetBooking   = access.Operation{Name: "booking.get"}

	OpConfirmBooking = access.Operation{
		Name:                    "booking.confirm",
		RequiredRoles:           providerRoles,
		RequiresVerifiedProfile: true,
	}
	OpCancelBooking = access.Operation{
		Name:          "booking.cancel",
		RequiredRoles: append([]models.Role{models.RolePetOwner}, providerRoles...),
	}
	OpStartBooking = access.Operation{
		Name:                    "booking.start",
		RequiredRoles:           providerRoles,
		RequiresVerifiedProfile: true,
	}
	OpRequestCompletion = access.Operation{
		Name:                    "booking.request_completion",
		RequiredRoles:           providerRoles,
		RequiresVerifiedProfile: true,
	}
	OpConfirmCompletion = access.Operation{
		Name:          "booking.confirm_completion",
		RequiredRoles: []models.Role{models.RolePetOwner},
	}
	OpFinalizeCompletion = access.Operation{
		Name:          "booking.finalize_completion",
		RequiredRoles: []models.Role{models.RoleAdmin},
	}
)
