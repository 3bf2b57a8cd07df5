// Package live orchestrates a bidirectional voice conversation: it captures
// microphone PCM in fixed-size blocks, base64-frames it to the remote live
// session, and decodes returned audio frames into a gapless playback
// schedule with server-driven interruption handling.
//
// The session is a four-state machine (Idle, Connecting, Open, Closed;
// Closed is terminal and reachable from any state). Inbound frames are
// handled in delivery order by a single goroutine, so each frame is fully
// decoded and scheduled before the next is read. The playback cursor and
// pending-buffer set are guarded by a mutex per the shared-resource policy.
//
// The session never reconnects. Remote errors and closes are forwarded
// verbatim on the Events channel as a tagged union of Message, Error, and
// Closed events, preserving delivery order.
package live
