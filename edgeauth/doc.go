// Package edgeauth generates signed authorization tokens for CDN edge
// servers.
//
// A token authorizes access to an ACL pattern or a single URL for a bounded
// time window and may be bound to a client IP, a session id or an opaque
// payload:
//
//	ip=203.0.113.7~st=1700000000~exp=1700000300~acl=/videos/*~id=abc~data=x~hmac=3f1c...
//
// Fields always appear in the order ip, st, exp, acl, id, data, followed by
// hmac. The signature is an HMAC (sha256, sha1 or md5) keyed with the
// hex-decoded shared secret over the emitted fields plus the signed-only
// url and salt fields, with the last field delimiter removed. When neither
// an ACL nor a URL is set the token carries acl=/*.
//
// # Basic Usage
//
//	req := edgeauth.NewTokenRequest()
//	if err := req.SetKey("a1b2c3d4e5f60718"); err != nil {
//	    return err
//	}
//	if err := req.SetACL("/videos/*"); err != nil {
//	    return err
//	}
//	_ = req.SetWindow(600)
//
//	token, err := req.GenerateToken()
//
// Setters validate eagerly and return sentinel errors (ErrInvalidKey,
// ErrMutuallyExclusiveFields, ...) that can be matched with errors.Is.
//
// # Generator
//
// A Generator holds the shared signing settings and is safe for concurrent
// use:
//
//	g, err := edgeauth.New(edgeauth.Config{Key: key, Window: 600})
//	token, err := g.GenerateACLToken("/videos/*")
//
// The global instance is configured from the environment
// (BEAVER_EDGEAUTH_KEY, BEAVER_EDGEAUTH_ALGORITHM, BEAVER_EDGEAUTH_WINDOW,
// BEAVER_EDGEAUTH_FIELD_DELIMITER, BEAVER_EDGEAUTH_EARLY_URL_ENCODING,
// BEAVER_EDGEAUTH_SALT):
//
//	if err := edgeauth.Init(); err != nil {
//	    log.Fatal(err)
//	}
//	token, err := edgeauth.GenerateURLToken("/videos/intro.mp4")
//
// Tokens are only generated here; verification happens on the edge.
package edgeauth
