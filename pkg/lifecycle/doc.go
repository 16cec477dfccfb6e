// Package lifecycle sequences the create, update and login steps of a request
// into a single typed call.
//
// Every operation follows the same shape: run a pre-hook, decode the payload,
// apply the domain function, run an optional post-hook. The first failing step
// aborts the invocation and nothing after it runs. Nothing is persisted and
// nothing is retried; both belong to the caller.
//
// # Context
//
// Pipelines are generic over the host's request context. Any type with a
// Context() context.Context method works, which covers *http.Request and most
// framework contexts:
//
//	users := lifecycle.NewCreator[*http.Request, CreateUser, User](
//	    binder.Decoder[CreateUser](binder.JSON()),
//	    NewUser,
//	    lifecycle.WithPreHook[*http.Request, User](h.ensureUsernameFree),
//	    lifecycle.WithName[*http.Request, User]("signup"),
//	)
//
//	user, err := users.Create(r)
//
// The struct fields of Creator, Updater and Loginer are exported, so a struct
// literal works as well; nil hooks and an empty name fall back to defaults.
//
// The request context is checked before each step, so a cancelled request
// unwinds without running the remaining steps.
//
// # Errors
//
// Failures are typed by the step that produced them:
//
//   - *HookError wraps the error returned by a pre- or post-hook unchanged.
//   - *DecodingError wraps the decoder's failure.
//   - *ConstructionError wraps the constructor's or mutator's failure.
//   - ErrAuthentication is returned for every login failure. Lookup and
//     verification failures are deliberately indistinguishable.
//
// Use the IsX / AsX helpers or errors.As to branch on them. Mapping errors to
// status codes is done by the host (see pkg/response).
//
// # Passwords
//
// PasswordAuthenticator builds a bcrypt-backed Authenticator for payloads that
// carry a username and a password:
//
//	login := lifecycle.Loginer[*http.Request, LoginRequest, User]{
//	    Decoder:      binder.Decoder[LoginRequest](binder.JSON()),
//	    Authenticate: lifecycle.PasswordAuthenticator[LoginRequest](repo.FindByUsername, User.PasswordHash),
//	}
package lifecycle
