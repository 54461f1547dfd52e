// Package queue 定义消息主题常量，供发布/订阅使用.
package queue

// 主题命名规范：ev.<域>.<动作>，尽量稳定且向后兼容.
// 域：file(文件对象)、ecole(学校)、account(账户)
// 动作：stored/updated/deleted/registered 等过去式表示已发生事实.

const (
	// 文件领域.
	TopicFileStored  = "ev.file.stored"  // 文件已写入对象存储且元数据落库
	TopicFileUpdated = "ev.file.updated" // 文件元数据更新
	TopicFileDeleted = "ev.file.deleted" // 文件记录与对象负载均已删除

	// 学校领域.
	TopicEcoleCreated = "ev.ecole.created" // 学校记录创建
	TopicEcoleDeleted = "ev.ecole.deleted" // 学校记录删除（含级联文件清理）

	// 账户领域.
	TopicAccountRegistered = "ev.account.registered" // 新账户注册
)

// 主题分组，用于批量订阅或权限控制.
var (
	// 文件相关主题集合.
	FileTopics = []string{TopicFileStored, TopicFileUpdated, TopicFileDeleted}

	// 学校相关主题集合.
	EcoleTopics = []string{TopicEcoleCreated, TopicEcoleDeleted}

	// 账户相关主题集合.
	AccountTopics = []string{TopicAccountRegistered}
)
