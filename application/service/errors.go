package service

import "errors"

// ErrClientClosed indicates the client has been closed.
var ErrClientClosed = errors.New("newstag: client is closed")

// ErrArticleExists indicates a create collided with an existing article ID.
var ErrArticleExists = errors.New("article already exists")
