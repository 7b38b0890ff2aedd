package wechat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMessageText(t *testing.T) {
	payload := `<xml>
		<ToUserName><![CDATA[gh_account]]></ToUserName>
		<FromUserName><![CDATA[user_openid]]></FromUserName>
		<CreateTime>1700000000</CreateTime>
		<MsgType><![CDATA[text]]></MsgType>
		<Content><![CDATA[菜单]]></Content>
	</xml>`

	msg, err := ParseMessage([]byte(payload))
	assert.NoError(t, err)
	assert.Equal(t, "gh_account", msg.ToUserName)
	assert.Equal(t, "user_openid", msg.FromUserName)
	assert.Equal(t, int64(1700000000), msg.CreateTime)
	assert.Equal(t, "text", msg.MsgType)
	assert.Equal(t, "菜单", msg.Content)
	assert.False(t, msg.IsMenuClick())
}

func TestParseMessageMenuClick(t *testing.T) {
	payload := `<xml>
		<ToUserName><![CDATA[gh_account]]></ToUserName>
		<FromUserName><![CDATA[user_openid]]></FromUserName>
		<CreateTime>1700000000</CreateTime>
		<MsgType><![CDATA[event]]></MsgType>
		<Event><![CDATA[CLICK]]></Event>
		<EventKey><![CDATA[QUERY_ORDERS]]></EventKey>
	</xml>`

	msg, err := ParseMessage([]byte(payload))
	assert.NoError(t, err)
	assert.True(t, msg.IsMenuClick())
}

func TestParseMessageOtherEventIsNotMenuClick(t *testing.T) {
	payload := `<xml>
		<MsgType><![CDATA[event]]></MsgType>
		<Event><![CDATA[subscribe]]></Event>
	</xml>`

	msg, err := ParseMessage([]byte(payload))
	assert.NoError(t, err)
	assert.False(t, msg.IsMenuClick())
}

func TestParseMessageInvalidXML(t *testing.T) {
	_, err := ParseMessage([]byte("{not xml}"))
	assert.Error(t, err)
}

func TestNewTextReply(t *testing.T) {
	msg := &Message{ToUserName: "gh_account", FromUserName: "user_openid"}
	reply := NewTextReply(msg, "今日菜单信息")

	// The reply swaps sender and receiver
	assert.Equal(t, "user_openid", reply.ToUserName.Value)
	assert.Equal(t, "gh_account", reply.FromUserName.Value)
	assert.Equal(t, "text", reply.MsgType.Value)
	assert.NotZero(t, reply.CreateTime)

	encoded, err := reply.Marshal()
	assert.NoError(t, err)

	payload := string(encoded)
	assert.Contains(t, payload, "<ToUserName><![CDATA[user_openid]]></ToUserName>")
	assert.Contains(t, payload, "<FromUserName><![CDATA[gh_account]]></FromUserName>")
	assert.Contains(t, payload, "<MsgType><![CDATA[text]]></MsgType>")
	assert.Contains(t, payload, "<![CDATA[今日菜单信息]]>")
}
