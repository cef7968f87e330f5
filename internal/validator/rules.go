package validator

import (
	"log"

	"github.com/go-playground/validator/v10"

	"connecta_backend/internal/models"
)

// registerCustomRules wires domain value rules into the validator instance.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-type", validateUserType)
	mustRegister("is-job-status", validateJobStatus)
	mustRegister("is-proposal-status", validateProposalStatus)
	mustRegister("is-project-status", validateProjectStatus)
	mustRegister("is-contract-status", validateContractStatus)
}

func validateUserType(fl validator.FieldLevel) bool {
	switch models.UserType(fl.Field().String()) {
	case models.UserTypeClient, models.UserTypeFreelancer, models.UserTypeAdmin:
		return true
	}
	return false
}

func validateJobStatus(fl validator.FieldLevel) bool {
	switch models.JobStatus(fl.Field().String()) {
	case models.JobStatusDraft, models.JobStatusActive, models.JobStatusClosed:
		return true
	}
	return false
}

func validateProposalStatus(fl validator.FieldLevel) bool {
	switch models.ProposalStatus(fl.Field().String()) {
	case models.ProposalStatusPending, models.ProposalStatusAccepted,
		models.ProposalStatusDeclined, models.ProposalStatusWithdrawn,
		models.ProposalStatusExpired:
		return true
	}
	return false
}

func validateProjectStatus(fl validator.FieldLevel) bool {
	switch models.ProjectStatus(fl.Field().String()) {
	case models.ProjectStatusOngoing, models.ProjectStatusInProgress,
		models.ProjectStatusCompleted, models.ProjectStatusCancelled:
		return true
	}
	return false
}

func validateContractStatus(fl validator.FieldLevel) bool {
	switch models.ContractStatus(fl.Field().String()) {
	case models.ContractStatusDraft, models.ContractStatusPendingSignatures,
		models.ContractStatusActive, models.ContractStatusCompleted,
		models.ContractStatusTerminated, models.ContractStatusDisputed:
		return true
	}
	return false
}
