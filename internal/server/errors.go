package server

import "errors"

// errNoServersAreCreated means the handlers enable no transport that has a
// configured address.
var errNoServersAreCreated = errors.New("no servers are created")
