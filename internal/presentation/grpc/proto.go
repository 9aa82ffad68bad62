package grpc

// proto.go defines the gRPC service contract for skysatisfy.v1.SatisfactionService.
// Messages are plain Go structs carried by the JSON codec.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "skysatisfy.v1.SatisfactionService"

// SatisfactionServiceServer is the server API for SatisfactionService.
type SatisfactionServiceServer interface {
	Predict(context.Context, *PredictRequest) (*PredictResponse, error)
	GetModelInfo(context.Context, *GetModelInfoRequest) (*GetModelInfoResponse, error)
	GetPrediction(context.Context, *GetPredictionRequest) (*GetPredictionResponse, error)
	mustEmbedUnimplementedSatisfactionServiceServer()
}

// UnimplementedSatisfactionServiceServer provides forward-compatible default implementations.
type UnimplementedSatisfactionServiceServer struct{}

func (UnimplementedSatisfactionServiceServer) Predict(context.Context, *PredictRequest) (*PredictResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Predict not implemented")
}
func (UnimplementedSatisfactionServiceServer) GetModelInfo(context.Context, *GetModelInfoRequest) (*GetModelInfoResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetModelInfo not implemented")
}
func (UnimplementedSatisfactionServiceServer) GetPrediction(context.Context, *GetPredictionRequest) (*GetPredictionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetPrediction not implemented")
}
func (UnimplementedSatisfactionServiceServer) mustEmbedUnimplementedSatisfactionServiceServer() {}

// RegisterSatisfactionServiceServer registers the SatisfactionServiceServer with the gRPC server.
func RegisterSatisfactionServiceServer(s grpclib.ServiceRegistrar, srv SatisfactionServiceServer) {
	s.RegisterService(&_SatisfactionService_serviceDesc, srv)
}

var _SatisfactionService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SatisfactionServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "Predict", Handler: _SatisfactionService_Predict_Handler},
		{MethodName: "GetModelInfo", Handler: _SatisfactionService_GetModelInfo_Handler},
		{MethodName: "GetPrediction", Handler: _SatisfactionService_GetPrediction_Handler},
	},
	Streams: []grpclib.StreamDesc{},
}

func _SatisfactionService_Predict_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(PredictRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SatisfactionServiceServer).Predict(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/Predict"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SatisfactionServiceServer).Predict(ctx, req.(*PredictRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func _SatisfactionService_GetModelInfo_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetModelInfoRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SatisfactionServiceServer).GetModelInfo(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/GetModelInfo"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SatisfactionServiceServer).GetModelInfo(ctx, req.(*GetModelInfoRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func _SatisfactionService_GetPrediction_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetPredictionRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SatisfactionServiceServer).GetPrediction(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/GetPrediction"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SatisfactionServiceServer).GetPrediction(ctx, req.(*GetPredictionRequest))
	}
	return interceptor(ctx, req, info, handler)
}

// SatisfactionServiceClient is the client API for SatisfactionService. Every
// call uses the JSON codec.
type SatisfactionServiceClient struct {
	cc grpclib.ClientConnInterface
}

// NewSatisfactionServiceClient wraps a client connection.
func NewSatisfactionServiceClient(cc grpclib.ClientConnInterface) *SatisfactionServiceClient {
	return &SatisfactionServiceClient{cc: cc}
}

func (c *SatisfactionServiceClient) Predict(ctx context.Context, in *PredictRequest, opts ...grpclib.CallOption) (*PredictResponse, error) {
	out := new(PredictResponse)
	if err := c.invoke(ctx, "Predict", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *SatisfactionServiceClient) GetModelInfo(ctx context.Context, in *GetModelInfoRequest, opts ...grpclib.CallOption) (*GetModelInfoResponse, error) {
	out := new(GetModelInfoResponse)
	if err := c.invoke(ctx, "GetModelInfo", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *SatisfactionServiceClient) GetPrediction(ctx context.Context, in *GetPredictionRequest, opts ...grpclib.CallOption) (*GetPredictionResponse, error) {
	out := new(GetPredictionResponse)
	if err := c.invoke(ctx, "GetPrediction", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *SatisfactionServiceClient) invoke(ctx context.Context, method string, in, out interface{}, opts []grpclib.CallOption) error {
	opts = append([]grpclib.CallOption{grpclib.CallContentSubtype(JSONCodecName)}, opts...)
	return c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...)
}
