// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package glueup

import (
	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/domain/model"
)

// directoryRequest is the POST body shared by the directory and event list endpoints
type directoryRequest struct {
	Projection []string          `json:"projection"`
	Filter     []requestFilter   `json:"filter"`
	Order      map[string]string `json:"order"`
	Offset     int               `json:"offset"`
	Limit      int               `json:"limit"`
}

// requestFilter is a single filter clause in a list request
type requestFilter struct {
	Projection string `json:"projection"`
	Operator   string `json:"operator"`
	Values     []any  `json:"values"`
}

// sessionRequest is the POST body for the user session endpoint
type sessionRequest struct {
	Email      sessionValue `json:"email"`
	Passphrase sessionValue `json:"passphrase"`
}

// sessionValue wraps a field value the way the session endpoint expects
type sessionValue struct {
	Value string `json:"value"`
}

// sessionEnvelope is the response of the user session endpoint
type sessionEnvelope struct {
	Value struct {
		Token  string `json:"token"`
		Expiry int64  `json:"expiry"`
	} `json:"value"`
}

// individualEnvelope is the response of the individual membership directory
type individualEnvelope struct {
	Value []model.IndividualMemberRecord `json:"value"`
}

// corporateEnvelope is the response of the corporate membership directory
type corporateEnvelope struct {
	Value []model.CorporateMembershipRecord `json:"value"`
}

// eventEnvelope is the response of the event list endpoint
type eventEnvelope struct {
	Value []model.GlueUpEvent `json:"value"`
}
