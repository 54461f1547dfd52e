package queue

import "github.com/ThreeDotsLabs/watermill/message"

// -------------------------- 基于业务封装 events --------------------------

// PublishFileStored 发布 ev.file.stored 事件.
// 用于文件写入对象存储且元数据落库后，通知下游流程（统计、审计等）.
func PublishFileStored(pub message.Publisher, payload FileStoredPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicFileStored, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicFileStored, msg)
}

// PublishFileDeleted 发布 ev.file.deleted 事件.
func PublishFileDeleted(pub message.Publisher, payload FileDeletedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicFileDeleted, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicFileDeleted, msg)
}

// PublishEcoleCreated 发布 ev.ecole.created 事件.
func PublishEcoleCreated(pub message.Publisher, payload EcoleCreatedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicEcoleCreated, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicEcoleCreated, msg)
}

// PublishEcoleDeleted 发布 ev.ecole.deleted 事件.
func PublishEcoleDeleted(pub message.Publisher, payload EcoleDeletedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicEcoleDeleted, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicEcoleDeleted, msg)
}

// PublishAccountRegistered 发布 ev.account.registered 事件.
func PublishAccountRegistered(pub message.Publisher, payload AccountRegisteredPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicAccountRegistered, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicAccountRegistered, msg)
}

// ParseFileStored 将 Watermill 消息解析为强类型 Envelope（FileStoredPayload）.
func ParseFileStored(msg *message.Message) (Message[FileStoredPayload], error) {
	return ParseWatermillMessage[FileStoredPayload](msg)
}

// ParseFileDeleted 将 Watermill 消息解析为强类型 Envelope（FileDeletedPayload）.
func ParseFileDeleted(msg *message.Message) (Message[FileDeletedPayload], error) {
	return ParseWatermillMessage[FileDeletedPayload](msg)
}
