package wechat

import (
	"encoding/xml"
	"time"
)

// Message is an inbound message pushed by the WeChat platform
type Message struct {
	XMLName      xml.Name `xml:"xml"`
	ToUserName   string   `xml:"ToUserName"`
	FromUserName string   `xml:"FromUserName"`
	CreateTime   int64    `xml:"CreateTime"`
	MsgType      string   `xml:"MsgType"`
	Content      string   `xml:"Content"`
	Event        string   `xml:"Event"`
	EventKey     string   `xml:"EventKey"`
}

// ParseMessage decodes an inbound webhook XML payload
func ParseMessage(data []byte) (*Message, error) {
	var msg Message
	if err := xml.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// IsMenuClick reports whether the message is a click on the custom menu
// entry that queries the day's orders
func (m *Message) IsMenuClick() bool {
	return m.MsgType == "event" && m.Event == "CLICK" && m.EventKey == "QUERY_ORDERS"
}

type cdata struct {
	Value string `xml:",cdata"`
}

// TextReply is an outbound text reply, serialized with CDATA sections the
// way the platform documents it
type TextReply struct {
	XMLName      xml.Name `xml:"xml"`
	ToUserName   cdata    `xml:"ToUserName"`
	FromUserName cdata    `xml:"FromUserName"`
	CreateTime   int64    `xml:"CreateTime"`
	MsgType      cdata    `xml:"MsgType"`
	Content      cdata    `xml:"Content"`
}

// NewTextReply builds a text reply addressed back to the message sender
func NewTextReply(msg *Message, content string) *TextReply {
	return &TextReply{
		ToUserName:   cdata{msg.FromUserName},
		FromUserName: cdata{msg.ToUserName},
		CreateTime:   time.Now().Unix(),
		MsgType:      cdata{"text"},
		Content:      cdata{content},
	}
}

// Marshal serializes the reply to XML
func (r *TextReply) Marshal() ([]byte, error) {
	return xml.Marshal(r)
}
