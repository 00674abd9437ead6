// Package redisstore implements store.TaskStore on Redis.
//
// All tasks live in a single hash: the field is the task ID and the value is
// the task text, so List is one HGETALL and Create/DeleteByID are single
// HSET/HDEL commands.
package redisstore
