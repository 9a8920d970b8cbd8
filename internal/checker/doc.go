// Package checker holds the probing and classification core of seca-probe.
//
// Architecture overview:
//
//   - Resolver performs the diagnostic DNS lookup. A failure is recorded, never fatal.
//   - TCPProber implements Prober: one plain TCP connection per call, a minimal
//     HTTP/1.1 GET with "Connection: close", and a read until the peer closes. The
//     result is a Response holding the raw text and a structured view of it.
//   - Classifier owns the ordered admin-response rule table and the broader
//     exposed-info pattern. ClassifyScheme scores a URL scheme without any I/O.
//   - Runner executes probes with a concurrency bound, a rate limit and a per-probe
//     deadline, returning results in input order.
//   - Scanner composes the above and returns a Report of Finding values; printing
//     is left to cmd/.
//
// The scheme check only inspects the "http://host" literal the scanner builds. No
// TLS connection is attempted on port 443.
package checker
