package constants

import "time"

type (
	APIStatus   string
	CachePrefix string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixAirportsAll   CachePrefix = "AIRPORTS_ALL"
	CachePrefixAirportsState CachePrefix = "AIRPORTS_STATE_"
	CachePrefixRevokedToken  CachePrefix = "REVOKED_JTI_"
)

const (
	AirportCacheTTL = 10 * time.Minute

	MinUsernameLength = 3
	MaxUsernameLength = 150
	MinPasswordLength = 8
	MaxPasswordBytes  = 72
	MaxSubjectLength  = 255
	MaxEventNameLen   = 500
	AirportBatchSize  = 100
	ReplySubjectLabel = "Re: "
)
