// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Cluster Protocol
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError
type UnauthorizedError GenericError

// common errors - keep in alphabetic order
var (
	AlreadyInitialised      = ProcessError("already initialised")
	CertificateFileExists   = ExistsError("certificate file already exists")
	DatasetInactive         = InvalidError("dataset inactive")
	DatasetNotFound         = NotFoundError("dataset not found")
	DescriptionRequired     = LengthError("description is required")
	FullBuyNotEnabled       = InvalidError("full buy not enabled")
	IncorrectPaymentAmount  = InvalidError("incorrect payment amount")
	InsufficientAllowance   = InvalidError("insufficient allowance")
	InsufficientBalance     = InvalidError("insufficient balance")
	InvalidAmount           = InvalidError("invalid amount")
	InvalidConfiguration    = InvalidError("invalid configuration")
	InvalidCount            = InvalidError("invalid count")
	InvalidDuration         = InvalidError("invalid duration")
	InvalidIdentity         = InvalidError("invalid identity")
	InvalidInstrument       = InvalidError("invalid payment instrument")
	InvalidIpAddress        = InvalidError("invalid ip address")
	InvalidPrice            = InvalidError("invalid price")
	InvalidStructPointer    = InvalidError("invalid struct pointer")
	KeyFileExists           = ExistsError("key file already exists")
	MissingParameters       = LengthError("missing parameters")
	NameRequired            = LengthError("name is required")
	NoExpiryTierConfigured  = InvalidError("no expiry tier configured")
	NotApprovedForTransfer  = UnauthorizedError("not approved for transfer")
	NotDatasetRecord        = RecordError("not a dataset record")
	NotGrantRecord          = RecordError("not a grant record")
	NotInitialised          = ProcessError("not initialised")
	NotReceiptRecord        = RecordError("not a receipt record")
	NotTokenRecord          = RecordError("not a token record")
	RateLimiting            = ProcessError("rate limiting")
	ReceiptNotFound         = NotFoundError("receipt not found")
	TokenNotFound           = NotFoundError("token not found")
	TransactionInUse        = ProcessError("transaction already in use")
	TransferToSelf          = InvalidError("transfer to current owner")
	TransferToZeroIdentity  = InvalidError("transfer to zero identity")
	Unauthorized            = UnauthorizedError("unauthorized")
	UnknownAccessType       = InvalidError("unknown access type")
	URIRequired             = LengthError("uri is required")
	WrongInstrumentForValue = InvalidError("attached value not accepted for this instrument")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string       { return string(e) }
func (e InvalidError) Error() string      { return string(e) }
func (e LengthError) Error() string       { return string(e) }
func (e NotFoundError) Error() string     { return string(e) }
func (e ProcessError) Error() string      { return string(e) }
func (e RecordError) Error() string       { return string(e) }
func (e UnauthorizedError) Error() string { return string(e) }

// determine the class of an error
//
// wrapped instances (fmt.Errorf with %w adding amounts or other
// context) still report their class
func IsErrExists(e error) bool       { var t ExistsError; return errors.As(e, &t) }
func IsErrInvalid(e error) bool      { var t InvalidError; return errors.As(e, &t) }
func IsErrLength(e error) bool       { var t LengthError; return errors.As(e, &t) }
func IsErrNotFound(e error) bool     { var t NotFoundError; return errors.As(e, &t) }
func IsErrProcess(e error) bool      { var t ProcessError; return errors.As(e, &t) }
func IsErrRecord(e error) bool       { var t RecordError; return errors.As(e, &t) }
func IsErrUnauthorized(e error) bool { var t UnauthorizedError; return errors.As(e, &t) }
