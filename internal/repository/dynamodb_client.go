package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"health-assistant/internal/domain"
)

const (
	skProfile        = "PROFILE"
	skPrefixFeedback = "FEEDBACK#"
	dateLayout       = "2006-01-02"
)

// dynamodbAPI is the minimal DynamoDB interface required by Client.
// Defined here for testability.
type dynamodbAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// Client stores sender profiles and feedback in a single DynamoDB table.
// Profiles live at (SENDER#<id>, PROFILE); feedback records are appended
// under the same partition with a time-ordered FEEDBACK# sort key.
type Client struct {
	api       dynamodbAPI
	tableName string
	now       func() time.Time
}

// New creates a new repository Client.
func New(api dynamodbAPI, tableName string) (*Client, error) {
	if api == nil {
		return nil, errors.New("repository: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("repository: table name must not be empty")
	}
	return &Client{api: api, tableName: tableName, now: time.Now}, nil
}

func senderPK(senderID string) string {
	return "SENDER#" + senderID
}

// feedbackSK orders records by time; the uuid suffix keeps concurrent writes
// from colliding.
func feedbackSK(ts time.Time) string {
	return skPrefixFeedback + ts.UTC().Format(time.RFC3339Nano) + "#" + newUUID()
}

// GetProfile reads a sender profile. The bool is false when none exists.
func (c *Client) GetProfile(ctx context.Context, senderID string) (domain.Profile, bool, error) {
	if strings.TrimSpace(senderID) == "" {
		return domain.Profile{}, false, errors.New("repository: GetProfile: sender id is required")
	}
	out, err := c.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(c.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: senderPK(senderID)},
			"SK": &types.AttributeValueMemberS{Value: skProfile},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return domain.Profile{}, false, fmt.Errorf("repository: GetProfile get item: %w", err)
	}
	if out == nil || len(out.Item) == 0 {
		return domain.Profile{}, false, nil
	}

	p, err := itemToProfile(senderID, out.Item)
	if err != nil {
		return domain.Profile{}, false, fmt.Errorf("repository: GetProfile decode: %w", err)
	}
	return p, true, nil
}

// UpdateProfile merges the set fields of u into the stored profile, creating
// it if needed. Fields not present in u are left untouched.
func (c *Client) UpdateProfile(ctx context.Context, senderID string, u domain.ProfileUpdate) error {
	if strings.TrimSpace(senderID) == "" {
		return errors.New("repository: UpdateProfile: sender id is required")
	}
	if u.IsEmpty() {
		return nil
	}

	names := map[string]string{"#updatedAt": "updatedAt"}
	values := map[string]types.AttributeValue{
		":updatedAt": &types.AttributeValueMemberS{Value: c.now().UTC().Format(time.RFC3339)},
	}
	sets := []string{"#updatedAt = :updatedAt"}
	add := func(attr string, v types.AttributeValue) {
		names["#"+attr] = attr
		values[":"+attr] = v
		sets = append(sets, fmt.Sprintf("#%s = :%s", attr, attr))
	}

	if u.Language != nil {
		add("language", &types.AttributeValueMemberS{Value: string(*u.Language)})
	}
	if u.District != nil {
		add("district", &types.AttributeValueMemberS{Value: *u.District})
	}
	if u.State != nil {
		add("state", &types.AttributeValueMemberS{Value: string(*u.State)})
	}
	if u.Schedule != nil {
		add("schedule", scheduleAttr(*u.Schedule))
	}
	if u.DateOfBirth != nil {
		add("dateOfBirth", &types.AttributeValueMemberS{Value: u.DateOfBirth.Format(dateLayout)})
	}

	_, err := c.api.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(c.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: senderPK(senderID)},
			"SK": &types.AttributeValueMemberS{Value: skProfile},
		},
		UpdateExpression:          aws.String("SET " + strings.Join(sets, ", ")),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	if err != nil {
		return fmt.Errorf("repository: UpdateProfile: %w", err)
	}
	return nil
}

// AppendFeedback writes a new feedback record. Existing records are never
// overwritten.
func (c *Client) AppendFeedback(ctx context.Context, r domain.FeedbackRecord) error {
	if strings.TrimSpace(r.SenderID) == "" {
		return errors.New("repository: AppendFeedback: sender id is required")
	}
	ts := r.Timestamp
	if ts.IsZero() {
		ts = c.now()
	}

	_, err := c.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.tableName),
		Item: map[string]types.AttributeValue{
			"PK":        &types.AttributeValueMemberS{Value: senderPK(r.SenderID)},
			"SK":        &types.AttributeValueMemberS{Value: feedbackSK(ts)},
			"senderId":  &types.AttributeValueMemberS{Value: r.SenderID},
			"message":   &types.AttributeValueMemberS{Value: r.Message},
			"timestamp": &types.AttributeValueMemberS{Value: ts.UTC().Format(time.RFC3339Nano)},
		},
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	})
	if err != nil {
		return fmt.Errorf("repository: AppendFeedback: %w", err)
	}
	return nil
}

func scheduleAttr(entries []domain.ScheduleEntry) types.AttributeValue {
	list := make([]types.AttributeValue, 0, len(entries))
	for _, e := range entries {
		list = append(list, &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
			"vaccine":  &types.AttributeValueMemberS{Value: e.Vaccine},
			"dueDate":  &types.AttributeValueMemberS{Value: e.DueDate.Format(dateLayout)},
			"dueLabel": &types.AttributeValueMemberS{Value: e.DueLabel},
		}})
	}
	return &types.AttributeValueMemberL{Value: list}
}

// itemToProfile converts a DynamoDB attribute map to a Profile. Only PK is
// mandatory; every other attribute may be missing on a partially written item.
func itemToProfile(senderID string, item map[string]types.AttributeValue) (domain.Profile, error) {
	if _, err := strAttr(item, "PK"); err != nil {
		return domain.Profile{}, err
	}
	p := domain.NewProfile(senderID)

	if v, ok := optStrAttr(item, "language"); ok {
		if lang, ok := domain.ParseLanguage(v); ok {
			p.Language = lang
		}
	}
	if v, ok := optStrAttr(item, "district"); ok {
		p.District = v
	}
	if v, ok := optStrAttr(item, "state"); ok {
		p.State = domain.ParseConversationState(v)
	}
	if v, ok := optStrAttr(item, "updatedAt"); ok {
		p.UpdatedAt = v
	}
	if v, ok := optStrAttr(item, "dateOfBirth"); ok {
		dob, err := time.Parse(dateLayout, v)
		if err != nil {
			return domain.Profile{}, fmt.Errorf("repository: parse attribute %q: %w", "dateOfBirth", err)
		}
		p.DateOfBirth = &dob
	}
	if raw, ok := item["schedule"]; ok {
		entries, err := scheduleFromAttr(raw)
		if err != nil {
			return domain.Profile{}, err
		}
		p.Schedule = entries
	}
	return p, nil
}

func scheduleFromAttr(v types.AttributeValue) ([]domain.ScheduleEntry, error) {
	list, ok := v.(*types.AttributeValueMemberL)
	if !ok {
		return nil, errors.New("repository: attribute \"schedule\" is not a list")
	}
	out := make([]domain.ScheduleEntry, 0, len(list.Value))
	for i, elem := range list.Value {
		m, ok := elem.(*types.AttributeValueMemberM)
		if !ok {
			return nil, fmt.Errorf("repository: schedule[%d] is not a map", i)
		}
		vaccine, err := strAttr(m.Value, "vaccine")
		if err != nil {
			return nil, err
		}
		due, err := strAttr(m.Value, "dueDate")
		if err != nil {
			return nil, err
		}
		dueDate, err := time.Parse(dateLayout, due)
		if err != nil {
			return nil, fmt.Errorf("repository: schedule[%d] due date: %w", i, err)
		}
		label, _ := optStrAttr(m.Value, "dueLabel")
		out = append(out, domain.ScheduleEntry{Vaccine: vaccine, DueDate: dueDate, DueLabel: label})
	}
	return out, nil
}

func strAttr(item map[string]types.AttributeValue, key string) (string, error) {
	v, ok := item[key]
	if !ok {
		return "", fmt.Errorf("repository: missing attribute %q", key)
	}
	s, ok := v.(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("repository: attribute %q is not a string", key)
	}
	return s.Value, nil
}

func optStrAttr(item map[string]types.AttributeValue, key string) (string, bool) {
	s, err := strAttr(item, key)
	if err != nil {
		return "", false
	}
	return s, true
}

func defaultNewUUID() string {
	return uuid.NewString()
}

var newUUID = defaultNewUUID
