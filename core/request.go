package core

// UserAgent identifies the engine on every registry and download request;
// the content registry rejects anonymous clients.
const UserAgent = "crafthub/depcraft"
