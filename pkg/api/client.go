package api

import (
	"context"
	"strings"

	"connectrpc.com/connect"
)

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{WithCodec()}, opts...)
}

// AuthClient calls the AuthService.
type AuthClient struct {
	register       *connect.Client[RegisterRequest, RegisterResponse]
	login          *connect.Client[LoginRequest, LoginResponse]
	getCurrentUser *connect.Client[GetCurrentUserRequest, GetCurrentUserResponse]
}

// NewAuthClient constructs a client for the AuthService at baseURL.
func NewAuthClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &AuthClient{
		register:       connect.NewClient[RegisterRequest, RegisterResponse](httpClient, baseURL+AuthRegisterProcedure, opts...),
		login:          connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+AuthLoginProcedure, opts...),
		getCurrentUser: connect.NewClient[GetCurrentUserRequest, GetCurrentUserResponse](httpClient, baseURL+AuthGetCurrentUserProcedure, opts...),
	}
}

func (c *AuthClient) Register(ctx context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *AuthClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *AuthClient) GetCurrentUser(ctx context.Context, req *connect.Request[GetCurrentUserRequest]) (*connect.Response[GetCurrentUserResponse], error) {
	return c.getCurrentUser.CallUnary(ctx, req)
}

// SettingsClient calls the procedures of one settings resource.
type SettingsClient[T any] struct {
	list   *connect.Client[ListRequest, ListResponse[T]]
	create *connect.Client[CreateRequest, CreateResponse[T]]
	update *connect.Client[UpdateRequest, UpdateResponse[T]]
	delete *connect.Client[DeleteRequest, DeleteResponse]
	watch  *connect.Client[WatchRequest, WatchResponse[T]]
}

// NewSettingsClient constructs a client for resource (e.g. ResourceRoles).
func NewSettingsClient[T any](httpClient connect.HTTPClient, baseURL, resource string, opts ...connect.ClientOption) *SettingsClient[T] {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &SettingsClient[T]{
		list:   connect.NewClient[ListRequest, ListResponse[T]](httpClient, baseURL+SettingsProcedure("List", resource), opts...),
		create: connect.NewClient[CreateRequest, CreateResponse[T]](httpClient, baseURL+SettingsProcedure("Create", resource), opts...),
		update: connect.NewClient[UpdateRequest, UpdateResponse[T]](httpClient, baseURL+SettingsProcedure("Update", resource), opts...),
		delete: connect.NewClient[DeleteRequest, DeleteResponse](httpClient, baseURL+SettingsProcedure("Delete", resource), opts...),
		watch:  connect.NewClient[WatchRequest, WatchResponse[T]](httpClient, baseURL+SettingsProcedure("Watch", resource), opts...),
	}
}

func (c *SettingsClient[T]) List(ctx context.Context, req *connect.Request[ListRequest]) (*connect.Response[ListResponse[T]], error) {
	return c.list.CallUnary(ctx, req)
}

func (c *SettingsClient[T]) Create(ctx context.Context, req *connect.Request[CreateRequest]) (*connect.Response[CreateResponse[T]], error) {
	return c.create.CallUnary(ctx, req)
}

func (c *SettingsClient[T]) Update(ctx context.Context, req *connect.Request[UpdateRequest]) (*connect.Response[UpdateResponse[T]], error) {
	return c.update.CallUnary(ctx, req)
}

func (c *SettingsClient[T]) Delete(ctx context.Context, req *connect.Request[DeleteRequest]) (*connect.Response[DeleteResponse], error) {
	return c.delete.CallUnary(ctx, req)
}

func (c *SettingsClient[T]) Watch(ctx context.Context, req *connect.Request[WatchRequest]) (*connect.ServerStreamForClient[WatchResponse[T]], error) {
	return c.watch.CallServerStream(ctx, req)
}

// CalculationClient calls the CalculationService.
type CalculationClient struct {
	calculate *connect.Client[CalculateRequest, CalculateResponse]
	save      *connect.Client[SaveCalculationRequest, SaveCalculationResponse]
	list      *connect.Client[ListCalculationsRequest, ListCalculationsResponse]
	delete    *connect.Client[DeleteCalculationRequest, DeleteCalculationResponse]
}

// NewCalculationClient constructs a client for the CalculationService at baseURL.
func NewCalculationClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *CalculationClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &CalculationClient{
		calculate: connect.NewClient[CalculateRequest, CalculateResponse](httpClient, baseURL+CalculationCalculateProcedure, opts...),
		save:      connect.NewClient[SaveCalculationRequest, SaveCalculationResponse](httpClient, baseURL+CalculationSaveProcedure, opts...),
		list:      connect.NewClient[ListCalculationsRequest, ListCalculationsResponse](httpClient, baseURL+CalculationListProcedure, opts...),
		delete:    connect.NewClient[DeleteCalculationRequest, DeleteCalculationResponse](httpClient, baseURL+CalculationDeleteProcedure, opts...),
	}
}

func (c *CalculationClient) Calculate(ctx context.Context, req *connect.Request[CalculateRequest]) (*connect.Response[CalculateResponse], error) {
	return c.calculate.CallUnary(ctx, req)
}

func (c *CalculationClient) SaveCalculation(ctx context.Context, req *connect.Request[SaveCalculationRequest]) (*connect.Response[SaveCalculationResponse], error) {
	return c.save.CallUnary(ctx, req)
}

func (c *CalculationClient) ListCalculations(ctx context.Context, req *connect.Request[ListCalculationsRequest]) (*connect.Response[ListCalculationsResponse], error) {
	return c.list.CallUnary(ctx, req)
}

func (c *CalculationClient) DeleteCalculation(ctx context.Context, req *connect.Request[DeleteCalculationRequest]) (*connect.Response[DeleteCalculationResponse], error) {
	return c.delete.CallUnary(ctx, req)
}

// BrandingClient calls the BrandingService.
type BrandingClient struct {
	getHeader *connect.Client[GetHeaderRequest, GetHeaderResponse]
}

// NewBrandingClient constructs a client for the BrandingService at baseURL.
func NewBrandingClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *BrandingClient {
	baseURL = strings.TrimRight(baseURL, "/")
	return &BrandingClient{
		getHeader: connect.NewClient[GetHeaderRequest, GetHeaderResponse](httpClient, baseURL+BrandingGetHeaderProcedure, clientOptions(opts)...),
	}
}

func (c *BrandingClient) GetHeader(ctx context.Context, req *connect.Request[GetHeaderRequest]) (*connect.Response[GetHeaderResponse], error) {
	return c.getHeader.CallUnary(ctx, req)
}
