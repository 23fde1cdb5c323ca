// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Response is the raw body returned by a remote function.
type Response []byte

func (r Response) String() string {
	return string(r)
}

// JSON parses the body, unwrapping it first when the backend returned a JSON
// string that itself encodes the document.
func (r Response) JSON() gjson.Result {
	return gjson.ParseBytes(r.Unquote())
}

// Unquote returns the contents of a JSON string body. Any other body is
// returned unchanged.
func (r Response) Unquote() Response {
	trimmed := strings.TrimSpace(string(r))
	if !strings.HasPrefix(trimmed, `"`) {
		return r
	}
	if res := gjson.Parse(trimmed); res.Type == gjson.String {
		return Response(res.Str)
	}
	return r
}

// Text is the body as a plain scalar: unquoted and trimmed. Keys, handles and
// session ids all arrive this way.
func (r Response) Text() string {
	return strings.TrimSpace(string(r.Unquote()))
}
