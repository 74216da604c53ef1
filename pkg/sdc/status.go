package sdc

// Status is the normalized lifecycle state of an SDC object. SDC itself
// reports a mix of onboarding-API statuses ("Draft", "Certified") and
// catalog lifecycle states ("NOT_CERTIFIED_CHECKOUT"); ParseStatus folds
// both vocabularies into this one.
type Status string

const (
	// StatusNone means the object does not exist in SDC yet.
	StatusNone Status = ""

	StatusDraft              Status = "Draft"
	StatusUploaded           Status = "Uploaded"
	StatusValidated          Status = "Validated"
	StatusCommitted          Status = "Committed"
	StatusCertified          Status = "Certified"
	StatusCheckedIn          Status = "Checked In"
	StatusSubmitted          Status = "Submitted"
	StatusUnderCertification Status = "Under Certification"
	StatusDistributed        Status = "Distributed"
)

// Raw lifecycle state strings as SDC returns them.
const (
	stateNotCertifiedCheckout    = "NOT_CERTIFIED_CHECKOUT"
	stateNotCertifiedCheckin     = "NOT_CERTIFIED_CHECKIN"
	stateReadyForCertification   = "READY_FOR_CERTIFICATION"
	stateCertificationInProgress = "CERTIFICATION_IN_PROGRESS"
	stateCertified               = "CERTIFIED"

	distributionStateDistributed = "DISTRIBUTED"

	// distributionDownloadOK is the per-component state a distribution
	// listing must show for the service to count as distributed.
	distributionDownloadOK = "DOWNLOAD_OK"
)

// Lifecycle and distribution actions.
const (
	actionCheckin            = "Checkin"
	actionCheckout           = "Checkout"
	actionCertify            = "Certify"
	actionCertificationReq   = "certificationRequest"
	actionStartCertification = "startCertification"

	actionCommit        = "Commit"
	actionSubmit        = "Submit"
	actionCreatePackage = "Create_Package"
)

// ParseStatus normalizes an SDC lifecycle state plus the optional
// distribution state into a Status. Unknown non-empty states pass
// through verbatim so new remote vocabulary is not silently lost.
func ParseStatus(lifecycleState, distributionState string) Status {
	switch lifecycleState {
	case stateCertified, string(StatusCertified):
		if distributionState == distributionStateDistributed {
			return StatusDistributed
		}
		return StatusCertified
	case stateNotCertifiedCheckout:
		return StatusDraft
	case stateNotCertifiedCheckin:
		return StatusCheckedIn
	case stateReadyForCertification:
		return StatusSubmitted
	case stateCertificationInProgress:
		return StatusUnderCertification
	case "":
		return StatusNone
	default:
		return Status(lifecycleState)
	}
}
