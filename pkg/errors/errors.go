package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	grpccodes "google.golang.org/grpc/codes"
)

// Code is the type representing a namespace error code.
type Code[MT any] struct {
	Code     uint16
	Name     string
	GrpcCode grpccodes.Code
}

// New creates a new error with the given code and the message
func (c Code[MT]) New(msg string, args ...any) TypedError[MT] {
	return &ErrorImpl[MT]{
		code:  c,
		cause: fmt.Errorf(msg, args...),
	}
}

// Wrap creates a new Error with the given code and the cause error
func (c Code[MT]) Wrap(cause error) TypedError[MT] {
	return &ErrorImpl[MT]{
		code:  c,
		cause: cause,
	}
}

// Is reports whether any error in err's chain carries this code.
func (c Code[MT]) Is(err error) bool {
	var e Error
	if !stderrors.As(err, &e) {
		return false
	}
	return e.Code() == c.Code
}

func (c Code[MT]) String() string {
	return fmt.Sprintf("%s (%d)", c.Name, c.Code)
}

type Error interface {
	error
	Log() *log.Entry
	Code() uint16
	CodeName() string
	GrpcCode() grpccodes.Code
	Metadata() map[string]string
}

type TypedError[MT any] interface {
	Error
	WithMetadata(MT) TypedError[MT]
}

// ErrorImpl is the default concrete implementation of TypedError.
type ErrorImpl[MT any] struct {
	code     Code[MT]
	cause    error
	metadata MT
}

func (e *ErrorImpl[MT]) Log() *log.Entry {
	return log.WithField("name", e.code.Name).
		WithField("code", e.code.Code).
		WithField("metadata", e.metadata)
}

func (e *ErrorImpl[MT]) Metadata() map[string]string {
	// convert any metadata to map[string]string
	metadata := make(map[string]string)
	buf, err := json.Marshal(e.metadata)
	if err == nil {
		// numbers are kept as written, uint64 amounts must not go through float64
		dec := json.NewDecoder(bytes.NewReader(buf))
		dec.UseNumber()
		var genericMap map[string]any
		if err := dec.Decode(&genericMap); err == nil {
			for k, v := range genericMap {
				vStr := ""
				if v != nil {
					vStr = fmt.Sprintf("%v", v)
				}
				metadata[k] = vStr
			}
		}
	}
	return metadata
}

func (e *ErrorImpl[MT]) GrpcCode() grpccodes.Code {
	return e.code.GrpcCode
}

func (e *ErrorImpl[MT]) Code() uint16 {
	return e.code.Code
}

func (e *ErrorImpl[MT]) CodeName() string {
	return e.code.Name
}

// Error() implements the error interface.
func (e *ErrorImpl[MT]) Error() string {
	return fmt.Sprintf("%s: %s", e.code.String(), e.cause.Error())
}

func (e *ErrorImpl[MT]) Unwrap() error {
	return e.cause
}

func (e *ErrorImpl[MT]) WithMetadata(metadata MT) TypedError[MT] {
	e.metadata = metadata
	return e
}

type RoleMetadata struct {
	Caller   string `json:"caller"`
	Expected string `json:"expected"`
}

type AccountMetadata struct {
	Account string `json:"account"`
}

type NotEnoughBalanceMetadata struct {
	Account string `json:"account"`
	Balance uint64 `json:"balance"`
	Amount  uint64 `json:"amount"`
}

type BalanceOverflowMetadata struct {
	Account string `json:"account"`
	Balance uint64 `json:"balance"`
	Amount  uint64 `json:"amount"`
}

type AssetMetadata struct {
	AssetId string `json:"asset_id"`
}

type InvalidAccountIdMetadata struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type InvalidAssetParamsMetadata struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

var INTERNAL_ERROR = Code[map[string]any]{0, "INTERNAL_ERROR", grpccodes.Internal}
var NOT_MANAGER_ID = Code[RoleMetadata]{1, "NOT_MANAGER_ID", grpccodes.PermissionDenied}

// NOT_RESERVE_ID is reserved for reserve-gated operations, none is exposed yet.
var NOT_RESERVE_ID = Code[RoleMetadata]{2, "NOT_RESERVE_ID", grpccodes.PermissionDenied}
var NOT_FREEZE_ID = Code[RoleMetadata]{3, "NOT_FREEZE_ID", grpccodes.PermissionDenied}

// NOT_CLAWBACK_ID is reserved for clawback, which is not exposed yet.
var NOT_CLAWBACK_ID = Code[RoleMetadata]{4, "NOT_CLAWBACK_ID", grpccodes.PermissionDenied}
var NOT_OPTED_IN = Code[AccountMetadata]{5, "NOT_OPTED_IN", grpccodes.FailedPrecondition}

var ALREADY_OPTED_IN = Code[AccountMetadata]{
	6,
	"ALREADY_OPTED_IN",
	grpccodes.FailedPrecondition,
}

// NOT_FROZEN is never returned: the freeze guard only rejects already frozen accounts.
var NOT_FROZEN = Code[AccountMetadata]{7, "NOT_FROZEN", grpccodes.FailedPrecondition}
var NOT_FREEZABLE = Code[AssetMetadata]{8, "NOT_FREEZABLE", grpccodes.FailedPrecondition}
var ALREADY_FROZEN = Code[AccountMetadata]{9, "ALREADY_FROZEN", grpccodes.FailedPrecondition}
var FROZEN_ACCOUNT = Code[AccountMetadata]{10, "FROZEN_ACCOUNT", grpccodes.FailedPrecondition}

var NOT_ENOUGH_BALANCE = Code[NotEnoughBalanceMetadata]{
	11,
	"NOT_ENOUGH_BALANCE",
	grpccodes.FailedPrecondition,
}

// ZERO_AMOUNT is never returned: zero amount transfers are accepted.
var ZERO_AMOUNT = Code[any]{12, "ZERO_AMOUNT", grpccodes.InvalidArgument}
var ASSET_NOT_FOUND = Code[AssetMetadata]{13, "ASSET_NOT_FOUND", grpccodes.NotFound}

var ASSET_ALREADY_EXISTS = Code[AssetMetadata]{
	14,
	"ASSET_ALREADY_EXISTS",
	grpccodes.AlreadyExists,
}

var INVALID_ACCOUNT_ID = Code[InvalidAccountIdMetadata]{
	15,
	"INVALID_ACCOUNT_ID",
	grpccodes.InvalidArgument,
}

var BALANCE_OVERFLOW = Code[BalanceOverflowMetadata]{
	16,
	"BALANCE_OVERFLOW",
	grpccodes.OutOfRange,
}
var MISSING_CALLER = Code[any]{17, "MISSING_CALLER", grpccodes.Unauthenticated}

var INVALID_ASSET_PARAMS = Code[InvalidAssetParamsMetadata]{
	18,
	"INVALID_ASSET_PARAMS",
	grpccodes.InvalidArgument,
}
