// Package gateway is the public client for the verification gateway. It
// wires the resolved configuration into a token manager and a request
// dispatcher, and exposes one method per gateway operation: identity
// verification (NIN, BVN, bank accounts, TIN, driver's licence, passports),
// AML and PEP screening, physical address verification, SafeToken OTP,
// corporate registry lookups, BVN consent flows, credit history, and bill
// payment.
//
// Every endpoint method packages its arguments, attaches the operation's
// permission requirement, and delegates to the dispatcher; errors from the
// taxonomy in pkg/apierror propagate unchanged. Construction runs two
// ordered factory hooks (token manager, then dispatcher) so either layer can
// be substituted without breaking the wiring between them.
//
//	client, err := gateway.New(gateway.WithCredentials(id, secret))
//	if err != nil { ... }
//	defer client.Close()
//
//	resp, err := client.VerifyNINFull(ctx, "12345678901")
package gateway
