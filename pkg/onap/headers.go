package onap

import "github.com/google/uuid"

// Well-known user and credential values the ONAP demo installations ship
// with. They match what the platform GUIs send.
const (
	sdcCreatorUser  = "cs0008"
	sdcTesterUser   = "jm0007"
	sdcGovernorUser = "gv0001"
	sdcOperatorUser = "op0001"

	sdcAuth  = "Basic YWFpOktwOGJKNFNYc3pNMFdYbGhhazNlSGxjc2UyZ0F3ODR2YW9HR21KdlV5MlU="
	aaiAuth  = "Basic QUFJOkFBSQ=="
	soAuth   = "Basic SW5mcmFQb3J0YWxDbGllbnQ6cGFzc3dvcmQxJA=="
	sdncAuth = "Basic YWRtaW46S3A4Yko0U1hzek0wV1hsaGFrM2VIbGNzZTJnQXc4NHZhb0dHbUp2VXkyVQ=="
	cdsAuth  = "Basic Y2NzZGthcHBzOmNjc2RrYXBwcw=="
)

// BaseHeaders returns the headers every ONAP exchange carries.
func BaseHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}
}

func withBase(extra map[string]string) map[string]string {
	headers := BaseHeaders()
	for k, v := range extra {
		headers[k] = v
	}
	return headers
}

// SDCCreatorHeaders returns the header set of the SDC designer user.
func SDCCreatorHeaders() map[string]string {
	return withBase(map[string]string{
		"USER_ID":            sdcCreatorUser,
		"Authorization":      sdcAuth,
		"X-ECOMP-InstanceID": "onapsdk",
		"cache-control":      "no-cache",
	})
}

// SDCTesterHeaders returns the header set of the SDC tester user, used
// while a resource is under certification.
func SDCTesterHeaders() map[string]string {
	return withBase(map[string]string{
		"USER_ID":            sdcTesterUser,
		"Authorization":      sdcAuth,
		"X-ECOMP-InstanceID": "onapsdk",
	})
}

// SDCGovernorHeaders returns the header set of the SDC governor user,
// which approves distribution.
func SDCGovernorHeaders() map[string]string {
	return withBase(map[string]string{
		"USER_ID":            sdcGovernorUser,
		"Authorization":      sdcAuth,
		"X-ECOMP-InstanceID": "onapsdk",
	})
}

// SDCOperatorHeaders returns the header set of the SDC operator user,
// which triggers distribution.
func SDCOperatorHeaders() map[string]string {
	return withBase(map[string]string{
		"USER_ID":            sdcOperatorUser,
		"Authorization":      sdcAuth,
		"X-ECOMP-InstanceID": "onapsdk",
	})
}

// AAIHeaders returns the header set for A&AI exchanges. The transaction
// id is fresh per call.
func AAIHeaders() map[string]string {
	return withBase(map[string]string{
		"x-fromappid":     "onapsdk",
		"x-transactionid": uuid.NewString(),
		"authorization":   aaiAuth,
	})
}

// SOHeaders returns the header set for SO exchanges.
func SOHeaders() map[string]string {
	return withBase(map[string]string{
		"x-fromappid":     "onapsdk",
		"x-transactionid": uuid.NewString(),
		"authorization":   soAuth,
		"cache-control":   "no-cache",
	})
}

// SDNCHeaders returns the header set for SDNC exchanges.
func SDNCHeaders() map[string]string {
	return withBase(map[string]string{
		"authorization": sdncAuth,
	})
}

// CDSHeaders returns the header set for CDS blueprint processor
// exchanges.
func CDSHeaders() map[string]string {
	return withBase(map[string]string{
		"authorization": cdsAuth,
	})
}
