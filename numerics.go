// Copyright (c) 2024, ircore authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ircore

// Numeric is a three-digit server reply code, per RFC 2812/modern-IRC.
// The constants below name the codes this core emits plus a few
// related RFC codes it never emits; they are not the full RFC table.
// replyText below covers only the numerics with fixed text.
type Numeric uint16

const (
	RplWelcome  Numeric = 001
	RplYourHost Numeric = 002
	RplCreated  Numeric = 003
	RplMyInfo   Numeric = 004
	RplISupport Numeric = 005

	RplWhoReply   Numeric = 352
	RplEndOfWho   Numeric = 315
	RplNamReply   Numeric = 353
	RplEndOfNames Numeric = 366
	RplMOTDStart  Numeric = 375
	RplMOTD       Numeric = 372
	RplEndOfMOTD  Numeric = 376

	ErrNoSuchNick        Numeric = 401
	ErrNoSuchChannel     Numeric = 403
	ErrNoRecipient       Numeric = 411
	ErrNoTextToSend      Numeric = 412
	ErrUnknownCommand    Numeric = 421
	ErrNoNicknameGiven   Numeric = 431
	ErrErroneusNickname  Numeric = 432
	ErrNicknameInUse     Numeric = 433
	ErrNickCollision     Numeric = 436
	ErrNotRegistered     Numeric = 451
	ErrNeedMoreParams    Numeric = 461
	ErrAlreadyRegistered Numeric = 462
	ErrPasswdMismatch    Numeric = 464
)

// replyText holds the canonical fixed text for numerics whose trailing
// parameter is not derived from request context. Numerics with
// context-dependent trailing text (e.g. RPL_NAMREPLY) build their
// trailing parameter at the call site instead of looking it up here.
var replyText = map[Numeric]string{
	ErrNoTextToSend:      "No text to send",
	ErrNoNicknameGiven:   "No nickname given",
	ErrErroneusNickname:  "Erroneus nickname",
	ErrNicknameInUse:     "Nickname is already in use",
	ErrNickCollision:     "Nickname collision",
	ErrNeedMoreParams:    "Not enough parameters",
	ErrAlreadyRegistered: "You may not reregister",
	ErrPasswdMismatch:    "Password incorrect",
	RplEndOfNames:        "End of /NAMES list",
	RplEndOfMOTD:         "End of /MOTD command.",
	RplEndOfWho:          "End of WHO list",
}
