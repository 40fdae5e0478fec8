package rest

import (
	"context"
	"net/http"

	"github.com/quartzlab/discordkit/internal/entity"
	"github.com/quartzlab/discordkit/internal/ratelimit"
	"github.com/quartzlab/discordkit/pkg/errorx"
)

// GetGatewayBot resolves the streaming endpoint to connect to. This is the
// one bootstrap call a session must make before dialing; failing here is
// fatal to startup.
func (t *Transport) GetGatewayBot(ctx context.Context) (string, error) {
	resp, err := t.Execute(ctx, http.MethodGet, "/gateway/bot", nil, ratelimit.GlobalKey())
	if err != nil {
		return "", err
	}

	var out struct {
		URL string `json:"url"`
	}
	if err := resp.Decode(&out); err != nil {
		return "", errorx.Wrap(errorx.ErrBadResponse, "decode gateway url: %v", err)
	}

	if out.URL == "" {
		return "", errorx.Wrap(errorx.ErrBadResponse, "gateway url missing")
	}

	return out.URL, nil
}

type createMessageRequest struct {
	Content string `json:"content"`
	TTS     bool   `json:"tts,omitempty"`
}

func (t *Transport) CreateMessage(ctx context.Context, channelID entity.ID, content string) (*entity.Message, error) {
	resp, err := t.Execute(ctx, http.MethodPost, "/channels/"+channelID.String()+"/messages",
		createMessageRequest{Content: content}, ratelimit.ChannelKey(channelID))
	if err != nil {
		return nil, err
	}

	var msg entity.Message
	if err := resp.Decode(&msg); err != nil {
		return nil, errorx.Wrap(errorx.ErrBadResponse, "decode message: %v", err)
	}

	return &msg, nil
}

func (t *Transport) EditMessage(ctx context.Context, channelID, messageID entity.ID, content string) (*entity.Message, error) {
	resp, err := t.Execute(ctx, http.MethodPatch,
		"/channels/"+channelID.String()+"/messages/"+messageID.String(),
		createMessageRequest{Content: content}, ratelimit.ChannelKey(channelID))
	if err != nil {
		return nil, err
	}

	var msg entity.Message
	if err := resp.Decode(&msg); err != nil {
		return nil, errorx.Wrap(errorx.ErrBadResponse, "decode message: %v", err)
	}

	return &msg, nil
}

func (t *Transport) DeleteMessage(ctx context.Context, channelID, messageID entity.ID) error {
	_, err := t.Execute(ctx, http.MethodDelete,
		"/channels/"+channelID.String()+"/messages/"+messageID.String(),
		nil, ratelimit.ChannelKey(channelID))
	return err
}

func (t *Transport) GetChannel(ctx context.Context, channelID entity.ID) (*entity.Channel, error) {
	resp, err := t.Execute(ctx, http.MethodGet, "/channels/"+channelID.String(),
		nil, ratelimit.ChannelKey(channelID))
	if err != nil {
		return nil, err
	}

	var ch entity.Channel
	if err := resp.Decode(&ch); err != nil {
		return nil, errorx.Wrap(errorx.ErrBadResponse, "decode channel: %v", err)
	}

	return &ch, nil
}

type modifyChannelRequest struct {
	Name     string `json:"name,omitempty"`
	Topic    string `json:"topic,omitempty"`
	Position *int   `json:"position,omitempty"`
}

func (t *Transport) ModifyChannel(ctx context.Context, channelID entity.ID, name, topic string, position *int) (*entity.Channel, error) {
	resp, err := t.Execute(ctx, http.MethodPatch, "/channels/"+channelID.String(),
		modifyChannelRequest{Name: name, Topic: topic, Position: position},
		ratelimit.ChannelKey(channelID))
	if err != nil {
		return nil, err
	}

	var ch entity.Channel
	if err := resp.Decode(&ch); err != nil {
		return nil, errorx.Wrap(errorx.ErrBadResponse, "decode channel: %v", err)
	}

	return &ch, nil
}

func (t *Transport) GetGuild(ctx context.Context, guildID entity.ID) (*entity.Guild, error) {
	resp, err := t.Execute(ctx, http.MethodGet, "/guilds/"+guildID.String(),
		nil, ratelimit.GuildKey(guildID))
	if err != nil {
		return nil, err
	}

	var g entity.Guild
	if err := resp.Decode(&g); err != nil {
		return nil, errorx.Wrap(errorx.ErrBadResponse, "decode guild: %v", err)
	}

	return &g, nil
}

func (t *Transport) AddMemberRole(ctx context.Context, guildID, userID, roleID entity.ID) error {
	_, err := t.Execute(ctx, http.MethodPut,
		"/guilds/"+guildID.String()+"/members/"+userID.String()+"/roles/"+roleID.String(),
		nil, ratelimit.GuildKey(guildID))
	return err
}

func (t *Transport) RemoveMemberRole(ctx context.Context, guildID, userID, roleID entity.ID) error {
	_, err := t.Execute(ctx, http.MethodDelete,
		"/guilds/"+guildID.String()+"/members/"+userID.String()+"/roles/"+roleID.String(),
		nil, ratelimit.GuildKey(guildID))
	return err
}

type createBanRequest struct {
	DeleteMessageDays int    `json:"delete_message_days,omitempty"`
	Reason            string `json:"reason,omitempty"`
}

func (t *Transport) CreateBan(ctx context.Context, guildID, userID entity.ID, deleteDays int, reason string) error {
	_, err := t.Execute(ctx, http.MethodPut,
		"/guilds/"+guildID.String()+"/bans/"+userID.String(),
		createBanRequest{DeleteMessageDays: deleteDays, Reason: reason},
		ratelimit.GuildKey(guildID))
	return err
}

func (t *Transport) RemoveBan(ctx context.Context, guildID, userID entity.ID) error {
	_, err := t.Execute(ctx, http.MethodDelete,
		"/guilds/"+guildID.String()+"/bans/"+userID.String(),
		nil, ratelimit.GuildKey(guildID))
	return err
}
