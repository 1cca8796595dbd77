package service

import (
	"github.com/yael201062/rest-api2/internal/service/auth"
	"github.com/yael201062/rest-api2/internal/service/comment"
	"github.com/yael201062/rest-api2/internal/service/post"
)

type Collection struct {
	*auth.AuthService
	*post.PostService
	*comment.CommentService
}
