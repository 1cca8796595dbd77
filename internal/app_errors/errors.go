package app_errors

import "errors"

var ErrEmailExists = errors.New("email already registered")
var ErrWeakPassword = errors.New("password is too short")
var ErrInvalidCredentials = errors.New("wrong email or password")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidToken = errors.New("invalid token")
var ErrTokenExpired = errors.New("token expired")
var ErrServerMisconfigured = errors.New("token secret is not configured")
var ErrPostNotFound = errors.New("post not found")
var ErrCommentNotFound = errors.New("comment not found")
var ErrNotOwner = errors.New("you are not the owner of this record")
