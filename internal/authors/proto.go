package authors

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
)

// DefaultPackage is the protobuf package the user service is registered under.
const DefaultPackage = "user"

const (
	msgUserByIDRequest = "GetUserByIdRequest"
	msgUsersRequest    = "GetUsersRequest"
	msgUserInfo        = "UserInfoResponce"
	msgUserList        = "GetUserListResponce"
	msgUserImage       = "UserImage"

	methodUserByID = "GetUsersById"
	methodUserList = "GetUserList"
)

// userSchema describes the user service messages. Field numbers must match
// the server's user.proto.
func userSchema(pkg string) (protoreflect.FileDescriptor, error) {
	var (
		optional = descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum()
		repeated = descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
		str      = descriptorpb.FieldDescriptorProto_TYPE_STRING.Enum()
		i32      = descriptorpb.FieldDescriptorProto_TYPE_INT32.Enum()
		message  = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum()
	)
	ref := func(name string) *string { return proto.String("." + pkg + "." + name) }
	scalar := func(name string, num int32, typ *descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
		return &descriptorpb.FieldDescriptorProto{Name: proto.String(name), Number: proto.Int32(num), Label: optional, Type: typ}
	}
	nested := func(name string, num int32, label *descriptorpb.FieldDescriptorProto_Label, typeName *string) *descriptorpb.FieldDescriptorProto {
		return &descriptorpb.FieldDescriptorProto{Name: proto.String(name), Number: proto.Int32(num), Label: label, Type: message, TypeName: typeName}
	}

	file := &descriptorpb.FileDescriptorProto{
		Name:    proto.String(pkg + "/user.proto"),
		Package: proto.String(pkg),
		Syntax:  proto.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name:  proto.String(msgUserByIDRequest),
				Field: []*descriptorpb.FieldDescriptorProto{scalar("id", 1, str)},
			},
			{
				Name: proto.String(msgUsersRequest),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalar("page", 1, i32),
					scalar("search", 2, str),
				},
			},
			{
				Name: proto.String(msgUserImage),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalar("alt", 1, str),
					nested("variants", 2, repeated, ref(msgUserImage+".VariantsEntry")),
				},
				NestedType: []*descriptorpb.DescriptorProto{{
					Name: proto.String("VariantsEntry"),
					Field: []*descriptorpb.FieldDescriptorProto{
						scalar("key", 1, str),
						scalar("value", 2, str),
					},
					Options: &descriptorpb.MessageOptions{MapEntry: proto.Bool(true)},
				}},
			},
			{
				Name: proto.String(msgUserInfo),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalar("id", 1, str),
					scalar("first_name", 2, str),
					scalar("last_name", 3, str),
					scalar("slug", 4, str),
					scalar("position", 5, str),
					nested("image", 6, optional, ref(msgUserImage)),
				},
			},
			{
				Name: proto.String(msgUserList),
				Field: []*descriptorpb.FieldDescriptorProto{
					nested("users", 1, repeated, ref(msgUserInfo)),
					scalar("total_users", 2, i32),
				},
			},
		},
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name: proto.String("Users"),
			Method: []*descriptorpb.MethodDescriptorProto{
				{Name: proto.String(methodUserByID), InputType: ref(msgUserByIDRequest), OutputType: ref(msgUserInfo)},
				{Name: proto.String(methodUserList), InputType: ref(msgUsersRequest), OutputType: ref(msgUserList)},
			},
		}},
	}

	fd, err := protodesc.NewFile(file, nil)
	if err != nil {
		return nil, fmt.Errorf("build user schema: %w", err)
	}
	return fd, nil
}
