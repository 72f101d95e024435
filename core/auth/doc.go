// Package auth compiles the bearer-token validation policy.
//
// New checks the Settings once at startup (non-empty issuer and audience, an
// HMAC key of at least MinSecretKeyBytes) and returns an immutable Auth that
// validates tokens against:
//
//   - issuer equal to Settings.Issuer
//   - audience containing Settings.Audience
//   - an HS256/HS384/HS512 signature made with Settings.SecretKey
//   - a present, unexpired "exp" claim
//
// A valid token yields a Principal. Auth does not decide which routes need a
// principal; core/middleware/authn and core/middleware/authz do.
//
// GenerateToken mints tokens with the same settings and backs the token
// command.
package auth
