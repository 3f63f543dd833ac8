// Package transport executes authenticated calls against the verification
// gateway and converts every outcome into either a success Response or
// exactly one error from the taxonomy in pkg/apierror.
//
// Dispatch order for each call: pull a valid token from the TokenSource,
// verify the scope requirement locally, perform the HTTP exchange with the
// configured timeout, classify the result. The classification is exact:
//
//	timeout / connection failure  -> network error (timeout | connection)
//	401 on the first attempt      -> invalidate, refetch, retry once
//	401 on the retry              -> authentication error
//	400                           -> validation error
//	429                           -> rate limit error
//	>= 500                        -> network error (server_error)
//	2xx + business failure        -> api error
//	2xx + business success        -> Response with Success = true
//
// The single auth retry is the only retry the dispatcher ever performs.
// Richer retry or circuit-breaking policies belong in a wrapper supplied
// through the gateway's dispatcher factory hook.
package transport
