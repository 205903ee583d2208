package vector

import (
	"context"
	"fmt"
	"log/slog"

	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/cardwise/cardwise/internal/embedding"
)

// DefaultCollection is the qdrant collection holding labeled purchase
// descriptions used for semantic classification.
const DefaultCollection = "cardwise_purchases"

// QdrantIndex implements Index against a qdrant instance over gRPC.
type QdrantIndex struct {
	conn        *grpc.ClientConn
	collections pb.CollectionsClient
	points      pb.PointsClient
	collection  string
	logger      *slog.Logger
}

// NewQdrantIndex connects to qdrant at host:port.
func NewQdrantIndex(host string, port int, collection string, logger *slog.Logger) (*QdrantIndex, error) {
	if collection == "" {
		collection = DefaultCollection
	}
	if logger == nil {
		logger = slog.Default()
	}

	addr := fmt.Sprintf("%s:%d", host, port)
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to qdrant at %s: %w", addr, err)
	}

	return &QdrantIndex{
		conn:        conn,
		collections: pb.NewCollectionsClient(conn),
		points:      pb.NewPointsClient(conn),
		collection:  collection,
		logger:      logger,
	}, nil
}

// Close closes the underlying gRPC connection.
func (q *QdrantIndex) Close() error {
	if q.conn != nil {
		return q.conn.Close()
	}
	return nil
}

// EnsureCollection creates the collection if it does not already exist.
func (q *QdrantIndex) EnsureCollection(ctx context.Context) error {
	_, err := q.collections.Get(ctx, &pb.GetCollectionInfoRequest{
		CollectionName: q.collection,
	})
	if err == nil {
		q.logger.Debug("qdrant collection already exists", "collection", q.collection)
		return nil
	}

	q.logger.Info("creating qdrant collection",
		"collection", q.collection,
		"dimensions", embedding.Dimensions)

	_, err = q.collections.Create(ctx, &pb.CreateCollection{
		CollectionName: q.collection,
		VectorsConfig: &pb.VectorsConfig{
			Config: &pb.VectorsConfig_Params{
				Params: &pb.VectorParams{
					Size:     uint64(embedding.Dimensions),
					Distance: pb.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create collection %q: %w", q.collection, mapError(err))
	}

	return nil
}

// Query returns the topK nearest labeled examples by cosine similarity.
func (q *QdrantIndex) Query(ctx context.Context, queryVector []float32, topK int) ([]Match, error) {
	if topK <= 0 {
		topK = 1
	}

	result, err := q.points.Search(ctx, &pb.SearchPoints{
		CollectionName: q.collection,
		Vector:         queryVector,
		Limit:          uint64(topK),
		WithPayload: &pb.WithPayloadSelector{
			SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant search failed: %w", mapError(err))
	}

	matches := make([]Match, 0, len(result.Result))
	for _, point := range result.Result {
		var label string
		if val, ok := point.Payload["label"]; ok {
			if strVal, ok := val.Kind.(*pb.Value_StringValue); ok {
				label = strVal.StringValue
			}
		}
		matches = append(matches, Match{
			Label: label,
			Score: float64(point.Score),
		})
	}

	return matches, nil
}

// Upsert writes labeled training examples into the collection.
func (q *QdrantIndex) Upsert(ctx context.Context, points []Point) error {
	pbPoints := make([]*pb.PointStruct, len(points))
	for i, p := range points {
		pbPoints[i] = &pb.PointStruct{
			Id: &pb.PointId{
				PointIdOptions: &pb.PointId_Num{Num: p.ID},
			},
			Vectors: &pb.Vectors{
				VectorsOptions: &pb.Vectors_Vector{
					Vector: &pb.Vector{Data: p.Vector},
				},
			},
			Payload: map[string]*pb.Value{
				"label":       {Kind: &pb.Value_StringValue{StringValue: p.Label}},
				"description": {Kind: &pb.Value_StringValue{StringValue: p.Description}},
			},
		}
	}

	wait := true
	_, err := q.points.Upsert(ctx, &pb.UpsertPoints{
		CollectionName: q.collection,
		Points:         pbPoints,
		Wait:           &wait,
	})
	if err != nil {
		return fmt.Errorf("qdrant upsert failed: %w", mapError(err))
	}

	return nil
}

// mapError translates gRPC status codes into the package's error kinds.
func mapError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.NotFound:
		return fmt.Errorf("%w: %s", ErrCollectionNotFound, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %s", ErrUnavailable, st.Message())
	default:
		return err
	}
}
