package authors

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/media-site/internal/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

// UserService is the remote directory that owns author records.
type UserService interface {
	// UserByID returns nil, nil when the service has no such user.
	UserByID(ctx context.Context, id string) (*models.Author, error)
	Users(ctx context.Context, page int, search string) (*models.AuthorList, error)
}

// GRPCClient calls the user service over gRPC using dynamic messages.
type GRPCClient struct {
	conn    grpc.ClientConnInterface
	schema  protoreflect.FileDescriptor
	service string
	timeout time.Duration
}

var _ UserService = (*GRPCClient)(nil)

// Dial opens a plaintext connection to the user service.
func Dial(addr string) (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial user service %s: %w", addr, err)
	}
	return conn, nil
}

// NewGRPCClient builds a client for the Users service in protobuf package pkg.
// timeout bounds each call; 0 leaves the caller's deadline in charge.
func NewGRPCClient(conn grpc.ClientConnInterface, pkg string, timeout time.Duration) (*GRPCClient, error) {
	if pkg == "" {
		pkg = DefaultPackage
	}
	schema, err := userSchema(pkg)
	if err != nil {
		return nil, err
	}
	return &GRPCClient{
		conn:    conn,
		schema:  schema,
		service: pkg + ".Users",
		timeout: timeout,
	}, nil
}

// UserByID fetches a single user. An empty reply means the user does not exist.
func (c *GRPCClient) UserByID(ctx context.Context, id string) (*models.Author, error) {
	req := c.newMessage(msgUserByIDRequest)
	req.Set(req.Descriptor().Fields().ByName("id"), protoreflect.ValueOfString(id))

	resp := c.newMessage(msgUserInfo)
	if err := c.invoke(ctx, methodUserByID, req, resp); err != nil {
		return nil, err
	}
	if !resp.Has(resp.Descriptor().Fields().ByName("id")) {
		return nil, nil
	}

	var author models.Author
	if err := decode(resp, &author); err != nil {
		return nil, err
	}
	return &author, nil
}

// Users fetches one page of the author directory.
func (c *GRPCClient) Users(ctx context.Context, page int, search string) (*models.AuthorList, error) {
	req := c.newMessage(msgUsersRequest)
	fields := req.Descriptor().Fields()
	req.Set(fields.ByName("page"), protoreflect.ValueOfInt32(int32(page)))
	req.Set(fields.ByName("search"), protoreflect.ValueOfString(search))

	resp := c.newMessage(msgUserList)
	if err := c.invoke(ctx, methodUserList, req, resp); err != nil {
		return nil, err
	}

	var list models.AuthorList
	if err := decode(resp, &list); err != nil {
		return nil, err
	}
	if list.Users == nil {
		list.Users = []*models.Author{}
	}
	return &list, nil
}

func (c *GRPCClient) newMessage(name protoreflect.Name) *dynamicpb.Message {
	return dynamicpb.NewMessage(c.schema.Messages().ByName(name))
}

func (c *GRPCClient) invoke(ctx context.Context, method string, req, resp *dynamicpb.Message) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	if err := c.conn.Invoke(ctx, "/"+c.service+"/"+method, req, resp); err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	return nil
}

// decode maps a reply onto a model through the service's JSON field names.
func decode(msg *dynamicpb.Message, dst interface{}) error {
	data, err := protojson.MarshalOptions{EmitUnpopulated: true}.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode reply: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode reply: %w", err)
	}
	return nil
}
