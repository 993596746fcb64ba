/*
Package dsgen generates test vectors for RSA digital signature
peripherals that sign inside a hardware-encrypted key envelope. It
derives the Montgomery constants for a 32-bit multiplier, lays the key
material out in the fixed accelerator wire format, wraps it under a key
derived from a device HMAC key, and emits the C header consumed by the
device test harness together with a binary record of the full set.
*/
package dsgen
