// Package krypto provides key and identifier helpers for edge authorization
// tokens.
//
// # Shared Keys
//
// Edge servers and token issuers share an HMAC secret written as an
// even-length hex string. Generate a random one:
//
//	key, err := krypto.GenerateHexKey(krypto.DefaultKeyLength)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(key) // 64 hex characters
//
// or derive one deterministically from a passphrase with Argon2id:
//
//	key, err := krypto.DeriveHexKey("correct horse battery staple", "cdn-prod", 32)
//
// # Session IDs
//
// Tokens can be bound to a session through the id field:
//
//	id := krypto.NewSessionID() // e.g. "9b2c6f0e-8a4d-4a51-9d3f-2f1e6f1c7a10"
package krypto
