package constants

// Redis Key 前缀和格式常量
// 使用统一的命名规范: app:{module}:{entity}:{unique_id}
const (
	// AppPrefix 是所有Redis Key的统一应用前缀
	AppPrefix = "app"

	// JobModulePrefix 岗位模块
	JobModulePrefix = "job"

	// EntityVector 向量实体
	EntityVector = "vector"

	// KeyJobDescriptionVector JD向量缓存 (HASH: vector, model_version)
	// 格式: app:job:vector:{md5(jobText)}
	KeyJobDescriptionVector = AppPrefix + ":" + JobModulePrefix + ":" + EntityVector + ":%s"
)
