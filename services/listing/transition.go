package listing

import (
	"time"

	"obrafacil/models"
	"obrafacil/utils"
)

// acceptPrecheck validates the service-side preconditions of an acceptance and
// names the provider that must also be loaded: the caller owns the service,
// the service is still open and the chosen proposal exists and is pending.
// Pure so the surrounding transaction can re-run it on retry.
func acceptPrecheck(svc *models.Service, callerID, proposalID string) (string, error) {
	if svc.ClientID != callerID {
		return "", utils.ErrNotOwner
	}
	if svc.Status != models.ServiceOpen {
		return "", utils.ErrNotOpen
	}
	prop := svc.ProposalByID(proposalID)
	if prop == nil {
		return "", utils.ErrNotFound
	}
	if prop.Status != models.ProposalPending {
		return "", utils.ErrNotOpen
	}
	return prop.ProviderID, nil
}

// acceptApply produces the committed state of the acceptance: the service
// moves to in_progress carrying the assignment fields, the chosen proposal
// becomes accepted, the provider becomes busy with the acceptance timestamp.
// Losing proposals stay pending.
func acceptApply(svc *models.Service, prov *models.Provider, proposalID string, now time.Time) (*models.Service, *models.Provider, error) {
	prop := svc.ProposalByID(proposalID)
	if prop == nil {
		return nil, nil, utils.ErrNotFound
	}

	nextSvc := *svc
	nextSvc.Proposals = append([]models.Proposal{}, svc.Proposals...)
	for i := range nextSvc.Proposals {
		if nextSvc.Proposals[i].ID == proposalID {
			nextSvc.Proposals[i].Status = models.ProposalAccepted
		}
	}
	nextSvc.Status = models.ServiceInProgress
	nextSvc.AssignedProviderID = prop.ProviderID
	nextSvc.AcceptedProposalID = prop.ID
	nextSvc.AcceptedProposalAmount = prop.Amount

	nextProv := *prov
	nextProv.Status = models.ProviderBusy
	acceptedAt := now
	nextProv.ServiceAcceptedAt = &acceptedAt
	nextProv.UpdatedAt = now

	return &nextSvc, &nextProv, nil
}

// completePrecheck validates the completion transition: owner-only, service
// currently in progress with an assigned provider.
func completePrecheck(svc *models.Service, callerID string) (string, error) {
	if svc.ClientID != callerID {
		return "", utils.ErrNotOwner
	}
	if svc.Status != models.ServiceInProgress {
		return "", utils.ErrNotInProgress
	}
	if svc.AssignedProviderID == "" {
		return "", utils.ErrNotFound
	}
	return svc.AssignedProviderID, nil
}

// completeApply finishes the service and releases the provider: status
// completed with a completion timestamp, provider back to available with the
// acceptance timestamp cleared. Release is always explicit, never timed.
func completeApply(svc *models.Service, prov *models.Provider, now time.Time) (*models.Service, *models.Provider, error) {
	nextSvc := *svc
	nextSvc.Status = models.ServiceCompleted
	completedAt := now
	nextSvc.CompletedAt = &completedAt

	nextProv := *prov
	nextProv.Status = models.ProviderAvailable
	nextProv.ServiceAcceptedAt = nil
	nextProv.UpdatedAt = now

	return &nextSvc, &nextProv, nil
}
