package pricing

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "rentalpricing.v1.PricingService"

// Method names.
const (
	MethodQuote                = "Quote"
	MethodIssueContractPricing = "IssueContractPricing"
	MethodGetSnapshot          = "GetSnapshot"
	MethodListSnapshots        = "ListSnapshots"
	MethodCreatePriceList      = "CreatePriceList"
	MethodActivatePriceList    = "ActivatePriceList"
	MethodGetPriceList         = "GetPriceList"
	MethodListEvents           = "ListEvents"
)

// PricingServiceServer is the server API. Every method takes and returns a
// google.protobuf.Struct holding the JSON shapes of package wire.
type PricingServiceServer interface {
	Quote(context.Context, *structpb.Struct) (*structpb.Struct, error)
	IssueContractPricing(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetSnapshot(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListSnapshots(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreatePriceList(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ActivatePriceList(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetPriceList(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListEvents(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(PricingServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryMethod(name string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			server := srv.(PricingServiceServer)
			if interceptor == nil {
				return call(server, ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + name,
			}
			return interceptor(ctx, in, info, func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(server, ctx, req.(*structpb.Struct))
			})
		},
	}
}

// ServiceDesc describes PricingService for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PricingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(MethodQuote, PricingServiceServer.Quote),
		unaryMethod(MethodIssueContractPricing, PricingServiceServer.IssueContractPricing),
		unaryMethod(MethodGetSnapshot, PricingServiceServer.GetSnapshot),
		unaryMethod(MethodListSnapshots, PricingServiceServer.ListSnapshots),
		unaryMethod(MethodCreatePriceList, PricingServiceServer.CreatePriceList),
		unaryMethod(MethodActivatePriceList, PricingServiceServer.ActivatePriceList),
		unaryMethod(MethodGetPriceList, PricingServiceServer.GetPriceList),
		unaryMethod(MethodListEvents, PricingServiceServer.ListEvents),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rentalpricing/v1/pricing.proto",
}

// RegisterPricingServiceServer registers srv on s.
func RegisterPricingServiceServer(s grpc.ServiceRegistrar, srv PricingServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Client calls PricingService with wire-shaped requests and replies.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient creates a PricingService client.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Invoke calls method with req encoded as a Struct and decodes the reply into reply.
func (c *Client) Invoke(ctx context.Context, method string, req, reply interface{}, opts ...grpc.CallOption) error {
	in, err := toStruct(req)
	if err != nil {
		return err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return err
	}
	if reply == nil {
		return nil
	}
	return fromStruct(out, reply)
}
