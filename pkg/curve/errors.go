package curve

import "errors"

// errNoQuote signals that the curve's inventory preconditions are not met
// (e.g. a constant-product pair with too few NFTs): no gross price exists.
var errNoQuote = errors.New("curve: inventory insufficient to produce a quote")

// errDivideByZero signals a degenerate curve parameter (e.g. delta == -1)
// that would divide by zero.
var errDivideByZero = errors.New("curve: divide by zero")
