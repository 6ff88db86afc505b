package grpc

// proto.go defines the gRPC server interface derived from
// deepxcheck/v1/analysis.proto. This file serves as a stand-in for
// buf-generated code. Once `buf generate` is run, replace this file with the
// import from the generated package.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ProfileAnalysisServiceServer is the server API for ProfileAnalysisService.
type ProfileAnalysisServiceServer interface {
	AnalyzeProfile(context.Context, *AnalyzeProfileRequest) (*AnalyzeProfileResponse, error)
	GetAnalysis(context.Context, *GetAnalysisRequest) (*GetAnalysisResponse, error)
	ListAnalyses(context.Context, *ListAnalysesRequest) (*ListAnalysesResponse, error)
	mustEmbedUnimplementedProfileAnalysisServiceServer()
}

// UnimplementedProfileAnalysisServiceServer provides forward-compatible default implementations.
type UnimplementedProfileAnalysisServiceServer struct{}

func (UnimplementedProfileAnalysisServiceServer) AnalyzeProfile(context.Context, *AnalyzeProfileRequest) (*AnalyzeProfileResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AnalyzeProfile not implemented")
}
func (UnimplementedProfileAnalysisServiceServer) GetAnalysis(context.Context, *GetAnalysisRequest) (*GetAnalysisResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetAnalysis not implemented")
}
func (UnimplementedProfileAnalysisServiceServer) ListAnalyses(context.Context, *ListAnalysesRequest) (*ListAnalysesResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListAnalyses not implemented")
}
func (UnimplementedProfileAnalysisServiceServer) mustEmbedUnimplementedProfileAnalysisServiceServer() {
}

// RegisterProfileAnalysisServiceServer registers the server with the gRPC server.
func RegisterProfileAnalysisServiceServer(s *grpclib.Server, srv ProfileAnalysisServiceServer) {
	s.RegisterService(&_ProfileAnalysisService_serviceDesc, srv)
}

var _ProfileAnalysisService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "deepxcheck.v1.ProfileAnalysisService",
	HandlerType: (*ProfileAnalysisServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "AnalyzeProfile", Handler: _ProfileAnalysisService_AnalyzeProfile_Handler},
		{MethodName: "GetAnalysis", Handler: _ProfileAnalysisService_GetAnalysis_Handler},
		{MethodName: "ListAnalyses", Handler: _ProfileAnalysisService_ListAnalyses_Handler},
	},
	Streams: []grpclib.StreamDesc{},
}

func _ProfileAnalysisService_AnalyzeProfile_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(AnalyzeProfileRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(ProfileAnalysisServiceServer).AnalyzeProfile(ctx, req)
}

func _ProfileAnalysisService_GetAnalysis_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetAnalysisRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(ProfileAnalysisServiceServer).GetAnalysis(ctx, req)
}

func _ProfileAnalysisService_ListAnalyses_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(ListAnalysesRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(ProfileAnalysisServiceServer).ListAnalyses(ctx, req)
}
