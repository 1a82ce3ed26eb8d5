package docs

import _ "embed"

// AsyncAPISpec documents the recording websocket protocol. Served at
// /asyncapi.yaml so mobile clients can generate their frame types.
//
//go:embed asyncapi.yaml
var AsyncAPISpec []byte
