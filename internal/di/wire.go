//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	chathandler "gomentor/internal/chat/handler"
	chatrepo "gomentor/internal/chat/repository"
	chatservice "gomentor/internal/chat/service"
	"gomentor/internal/content"
	"gomentor/internal/user"
)

var chatSet = wire.NewSet(
	chatrepo.NewChatRepository,
	chatservice.NewChatService,
	chathandler.NewChatHandler,
)

var userSet = wire.NewSet(
	user.NewUserRepository,
	user.NewProfileRepository,
	user.NewUserService,
	user.NewHandler,
)

var contentSet = wire.NewSet(
	content.NewContentRepository,
	wire.Bind(new(content.Blogs), new(*content.ContentRepository)),
	wire.Bind(new(content.Tutorials), new(*content.ContentRepository)),
	wire.Bind(new(content.Comments), new(*content.ContentRepository)),
	wire.Bind(new(content.Reactions), new(*content.ContentRepository)),
	content.NewContentService,
	wire.Bind(new(content.ContentUsecase), new(*content.ContentService)),
	wire.Struct(new(content.ContentHandlers), "ContentSvc"),
)

// InitializeApplication assembles the service and its cleanup from the environment.
func InitializeApplication() (*Application, func(), error) {
	wire.Build(
		ProvideConfig,
		ProvideDatabase,
		ProvideCache,
		ProvideUnreadCounter,
		ProvideTokenManager,
		chatSet,
		userSet,
		contentSet,
		NewRouter,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil, nil
}
