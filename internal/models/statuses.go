package models

type UserType string
type JobStatus string
type ProposalStatus string
type ProjectStatus string
type PaymentStatus string
type EscrowStatus string
type ContractStatus string
type CollaboStatus string
type CollaboRoleStatus string
type TransactionType string
type TransactionStatus string

const (
	UserTypeClient     UserType = "client"
	UserTypeFreelancer UserType = "freelancer"
	UserTypeAdmin      UserType = "admin"

	JobStatusDraft  JobStatus = "draft"
	JobStatusActive JobStatus = "active"
	JobStatusClosed JobStatus = "closed"

	ProposalStatusPending   ProposalStatus = "pending"
	ProposalStatusAccepted  ProposalStatus = "accepted"
	ProposalStatusDeclined  ProposalStatus = "declined"
	ProposalStatusWithdrawn ProposalStatus = "withdrawn"
	ProposalStatusExpired   ProposalStatus = "expired"

	ProjectStatusOngoing    ProjectStatus = "ongoing"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusCancelled  ProjectStatus = "cancelled"

	PaymentTypeProject         = "project"
	PaymentTypeMilestone       = "milestone"
	PaymentTypeJobVerification = "job_verification"

	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"

	EscrowStatusNone     EscrowStatus = "none"
	EscrowStatusHeld     EscrowStatus = "held"
	EscrowStatusReleased EscrowStatus = "released"

	ContractStatusDraft             ContractStatus = "draft"
	ContractStatusPendingSignatures ContractStatus = "pending_signatures"
	ContractStatusActive            ContractStatus = "active"
	ContractStatusCompleted         ContractStatus = "completed"
	ContractStatusTerminated        ContractStatus = "terminated"
	ContractStatusDisputed          ContractStatus = "disputed"

	CollaboStatusOpen       CollaboStatus = "open"
	CollaboStatusInProgress CollaboStatus = "in_progress"
	CollaboStatusCompleted  CollaboStatus = "completed"
	CollaboStatusCancelled  CollaboStatus = "cancelled"

	CollaboRoleStatusOpen    CollaboRoleStatus = "open"
	CollaboRoleStatusInvited CollaboRoleStatus = "invited"
	CollaboRoleStatusFilled  CollaboRoleStatus = "filled"

	TransactionTypePaymentSent     TransactionType = "payment_sent"
	TransactionTypePaymentReceived TransactionType = "payment_received"
	TransactionTypeEscrowRelease   TransactionType = "escrow_release"
	TransactionTypeWithdrawal      TransactionType = "withdrawal"

	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)
